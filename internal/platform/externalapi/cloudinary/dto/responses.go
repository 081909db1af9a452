// Package dto holds the Cloudinary API response bodies.
package dto

// APIError is the error envelope Cloudinary returns on 4xx/5xx.
type APIError struct {
	Message string `json:"message"`
}

// UploadResponse is the subset of the image/upload response we use.
type UploadResponse struct {
	PublicID  string    `json:"public_id"`
	SecureURL string    `json:"secure_url"`
	URL       string    `json:"url"`
	Error     *APIError `json:"error,omitempty"`
}

// DestroyResponse is returned by image/destroy; Result is "ok" or "not found".
type DestroyResponse struct {
	Result string    `json:"result"`
	Error  *APIError `json:"error,omitempty"`
}
