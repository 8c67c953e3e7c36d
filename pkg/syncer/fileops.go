package syncer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// fileOps abstracts the filesystem so tests can run against an in-memory FS.
type fileOps interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFileAtomic(path string, data []byte, perm fs.FileMode) error
}

type osOps struct{}

func (osOps) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osOps) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }
func (osOps) WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	return writeFileAtomic(path, data, perm)
}

func assertFileExists(ops fileOps, path string) (fs.FileInfo, error) {
	st, err := ops.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("path is a directory, expected file: %s", path)
	}
	return st, nil
}

// writeFileAtomic writes data to a temp file in the same directory and renames it in place.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".pubspec-*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(name)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(name, path)
}
