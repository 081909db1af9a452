package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// URLPrefix is the route the local store's files are served from.
const URLPrefix = "/uploads"

// LocalStore writes media below a directory served by the HTTP router.
type LocalStore struct {
	dir     string
	baseURL string
}

var _ Store = (*LocalStore)(nil)

// NewLocalStore creates dir if needed. baseURL (e.g. "http://localhost:3000")
// prefixes returned URLs and may be empty for host-relative URLs.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir is the root directory served under URLPrefix.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if folder == "" || strings.Contains(folder, "..") {
		return "", fmt.Errorf("invalid folder %q", folder)
	}
	if err := os.MkdirAll(filepath.Join(s.dir, folder), 0o755); err != nil {
		return "", fmt.Errorf("create folder: %w", err)
	}

	name := ObjectName(filename)
	f, err := os.Create(filepath.Join(s.dir, folder, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close file: %w", err)
	}
	return s.baseURL + path.Join(URLPrefix, folder, name), nil
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, ok := strings.CutPrefix(url, s.baseURL+URLPrefix+"/")
	if !ok || rel == "" {
		return ErrUnknownURL
	}
	clean := path.Clean(rel)
	if strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return ErrUnknownURL
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(clean))); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
