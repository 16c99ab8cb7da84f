package avatar

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// FileStore persists avatar files addressed by the relative path
// stored on the user record
type FileStore interface {
	WriteFile(ctx context.Context, relativePath string, content []byte) error
	DeleteFile(ctx context.Context, relativePath string) error
}

var _ FileStore = PublicDirStore{}

// PublicDirStore keeps avatar files under the statically served public dir
type PublicDirStore struct {
	rootPath string
}

func NewPublicDirStore(rootPath string) PublicDirStore {
	return PublicDirStore{
		rootPath: rootPath,
	}
}

func (p PublicDirStore) WriteFile(ctx context.Context, relativePath string, content []byte) error {
	destinationPath := filepath.Join(p.rootPath, relativePath)

	if err := os.MkdirAll(filepath.Dir(destinationPath), 0o755); err != nil {
		return errors.Wrap(err, "Failed to create the avatar directory")
	}

	if err := os.WriteFile(destinationPath, content, 0o644); err != nil {
		return errors.Wrap(err, "Failed to write the avatar file")
	}

	return nil
}

func (p PublicDirStore) DeleteFile(ctx context.Context, relativePath string) error {
	if err := os.Remove(filepath.Join(p.rootPath, relativePath)); err != nil {
		return errors.Wrap(err, "Failed to delete the avatar file")
	}

	return nil
}
