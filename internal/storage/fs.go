package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedType = errors.New("only jpg, jpeg and png files are allowed")

var allowedExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// FSStore keeps uploaded images on local disk. The returned path is served
// back by the HTTP server under /uploads/.
type FSStore struct {
	Dir           string
	PublicBaseURL string
}

func NewFSStore(dir, publicBaseURL string) *FSStore {
	return &FSStore{Dir: dir, PublicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Save writes r under a fresh random name that keeps the original extension.
func (s *FSStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if !allowedExt[ext] {
		return "", ErrUnsupportedType
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	name := uuid.NewString() + ext
	out := filepath.Join(s.Dir, name)
	dst, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(out)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(out)
		return "", fmt.Errorf("close file: %w", err)
	}
	return s.PublicBaseURL + "/uploads/" + name, nil
}
