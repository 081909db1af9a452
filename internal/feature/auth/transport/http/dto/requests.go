// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

// SignupReq represents the request body for the /signup endpoint.
type SignupReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginReq represents the request body for the /login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileForm is the multipart body of /updateProfile. Both fields are
// optional; the image arrives as the "profileImage" file.
type ProfileForm struct {
	Name  string `form:"name"`
	Email string `form:"email" binding:"omitempty,email"`
}
