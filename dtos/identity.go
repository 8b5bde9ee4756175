package dtos

// Identity is what a verified bearer token tells us about the caller.
type Identity struct {
	UID   string
	Email string
}
