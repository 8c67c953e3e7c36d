package syncer

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/psanford/memfs"
)

// memfsOps implements fileOps on top of github.com/psanford/memfs for use in tests.
type memfsOps struct {
	fsys   *memfs.FS
	writes int
}

func (m *memfsOps) Stat(name string) (fs.FileInfo, error) { return fs.Stat(m.fsys, name) }
func (m *memfsOps) ReadFile(name string) ([]byte, error)  { return fs.ReadFile(m.fsys, name) }
func (m *memfsOps) WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	m.writes++
	if err := m.fsys.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return m.fsys.WriteFile(path, data, perm)
}

func writeMemFile(t *testing.T, mfs *memfs.FS, path string, data []byte) {
	t.Helper()
	if err := mfs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := mfs.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func readMemFile(t *testing.T, mfs *memfs.FS, path string) []byte {
	t.Helper()
	b, err := fs.ReadFile(mfs, path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	return b
}

func mustWriteFile(t *testing.T, path string, data []byte, perm fs.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir for write: %v", err)
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func mustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	return data
}
