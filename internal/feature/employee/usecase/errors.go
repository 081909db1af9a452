// Package usecase implements employee and attendance operations.
package usecase

import "errors"

var (
	// ErrEmployeeNotFound is returned for unknown or malformed employee ids.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrEmailAlreadyExists is returned when another employee has the email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidInput wraps validation failures.
	ErrInvalidInput = errors.New("invalid employee input")

	// ErrImageRequired is returned when create is called without an image.
	ErrImageRequired = errors.New("image file is required")

	// ErrImageUpload is returned when the media store rejects an upload.
	ErrImageUpload = errors.New("image upload failed")
)
