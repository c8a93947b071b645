package imagegen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidName = errors.New("invalid image name")
	ErrNotFound    = errors.New("image not found")
)

// Store keeps rendered cards as <uuid>.png files in one directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create image dir %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// Save writes data under a fresh name and returns that name.
func (s *Store) Save(data []byte) (string, error) {
	name := uuid.NewString() + ".png"
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	fmt.Printf("[IMAGE] Stored %s (%d bytes)\n", name, len(data))
	return name, nil
}

// Open reads a stored image by name.
func (s *Store) Open(name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}
	return data, nil
}

// ValidateName accepts a bare file name ending in .png.
func ValidateName(name string) error {
	switch {
	case name == "",
		strings.Contains(name, ".."),
		strings.ContainsAny(name, `/\`),
		!strings.HasSuffix(strings.ToLower(name), ".png"),
		len(name) == len(".png"):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
