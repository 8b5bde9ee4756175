package dtos

import (
	"unisale-backend/models"

	"github.com/google/uuid"
)

type SignupRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

type UpdateNameRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name" binding:"required,max=255"`
}

type UpdatePhoneRequest struct {
	UserID      string `json:"user_id"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ProfilePic  string    `json:"profilePic"`
	PhoneNumber string    `json:"phoneNumber"`
}

func NewProfileResponse(u models.User) ProfileResponse {
	pic := u.ProfilePicture
	if pic == "" {
		pic = models.DefaultProfilePicture
	}
	return ProfileResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		ProfilePic:  pic,
		PhoneNumber: u.Phone,
	}
}

// PublicUserResponse is what other users see on a seller page.
type PublicUserResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	ProfilePic string    `json:"profilePic"`
}

func NewPublicUserResponse(u models.User) PublicUserResponse {
	return PublicUserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		ProfilePic: u.ProfilePicture,
	}
}
