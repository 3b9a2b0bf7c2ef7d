package auth

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,max=30"`
	FullName string `json:"fullName" validate:"required,max=80"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
