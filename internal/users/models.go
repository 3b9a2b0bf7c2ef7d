package users

import "time"

type User struct {
	ID           string    `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Bio          string    `json:"bio"`
	Links        string    `json:"links"`
	ProfileImage string    `json:"profileImage"`
	CoverImage   string    `json:"coverImage"`
	Followers    []string  `json:"followers"`
	Following    []string  `json:"following"`
	LikedPosts   []string  `json:"likedPosts"`
	SavedPosts   []string  `json:"savedPosts"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summary is the populated form of a user reference.
type Summary struct {
	ID           string `json:"_id"`
	Username     string `json:"username"`
	FullName     string `json:"fullName"`
	ProfileImage string `json:"profileImage"`
}

type UpdateRequest struct {
	FullName        string `json:"fullName" validate:"max=80"`
	Email           string `json:"email" validate:"omitempty,email"`
	Username        string `json:"username" validate:"max=30"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	Bio             string `json:"bio" validate:"max=280"`
	Links           string `json:"links" validate:"max=200"`
	ProfileImage    string `json:"profileImage"`
	CoverImage      string `json:"coverImage"`
}
