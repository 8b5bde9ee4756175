package dtos

type WishlistToggleRequest struct {
	UsersID  string `json:"users_id"`
	ImageURL string `json:"image_url" binding:"required"`
}
