package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Storage persists encoded files and returns the URL they are served from.
type Storage interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Delete(ctx context.Context, name string) error
}

// LocalStorage writes files below dir and serves them under baseURL.
type LocalStorage struct {
	dir     string
	baseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	if strings.TrimSpace(dir) == "" {
		dir = "uploads"
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Dir() string { return s.dir }

// LocalPath maps a URL returned by Save back to the file on disk.
func (s *LocalStorage) LocalPath(url string) (string, bool) {
	rest, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return "", false
	}
	clean, err := cleanName(rest)
	if err != nil {
		return "", false
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), true
}

func (s *LocalStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	clean, err := cleanName(name)
	if err != nil {
		return "", err
	}
	target := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.baseURL + "/" + clean, nil
}

func (s *LocalStorage) Delete(ctx context.Context, name string) error {
	clean, err := cleanName(strings.TrimPrefix(name, s.baseURL+"/"))
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, filepath.FromSlash(clean)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cleanName(name string) (string, error) {
	clean := path.Clean("/" + strings.TrimSpace(name))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", ErrInvalidImage
	}
	return clean, nil
}
