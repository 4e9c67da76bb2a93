package avatar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// LocalStorage keeps avatars in a directory on disk.
type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("avatar: create %s: %w", dir, err)
	}
	return &LocalStorage{Dir: dir}, nil
}

func (s *LocalStorage) Store(ctx context.Context, tempPath, fileName string) (string, error) {
	dst := filepath.Join(s.Dir, fileName)

	err := os.Rename(tempPath, dst)
	if errors.Is(err, syscall.EXDEV) {
		err = moveAcrossDevices(tempPath, dst)
	}
	if err != nil {
		return "", fmt.Errorf("avatar: move upload: %w", err)
	}

	return Reference(fileName), nil
}

func moveAcrossDevices(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
