// Package media stores uploaded images and hands back public URLs.
package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Folders used by the features.
const (
	FolderEmployees = "employees"
	FolderProducts  = "products"
	FolderUsers     = "user_profiles"
)

// ErrUnknownURL is returned by Delete when the URL was not issued by the store.
var ErrUnknownURL = errors.New("media url not managed by this store")

// Store uploads and removes media objects.
type Store interface {
	// Upload stores r under folder and returns its public URL.
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	// Delete removes the object behind url.
	Delete(ctx context.Context, url string) error
}

// ObjectName returns a collision-free name that keeps the original extension.
func ObjectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}
