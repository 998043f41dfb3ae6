package storage

import (
	"Depot/internal/config"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BlobStore persists raw file bytes under generated opaque references.
// References never encode item names, so tree renames and moves leave the
// store untouched.
type BlobStore interface {
	Save(src io.Reader) (*BlobInfo, error)
	Open(ref string) (io.ReadSeekCloser, error)
	Path(ref string) (string, error)
	Exists(ref string) bool
	Remove(ref string) error
	Refs() ([]BlobRef, error)
}

type BlobInfo struct {
	Ref    string
	Size   int64
	SHA256 string
}

type BlobRef struct {
	Ref     string
	ModTime time.Time
}

const tmpPrefix = "tmp-"

type DiskBlobStore struct {
	root string
}

func NewBlobStore(configuration *config.Configuration) (BlobStore, error) {
	root := configuration.Storage.Path
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskBlobStore{root: root}, nil
}

// Save streams src into a temp file, syncs it, and renames it into place so
// that a reference handed out is always backed by fully written bytes.
func (s *DiskBlobStore) Save(src io.Reader) (*BlobInfo, error) {
	ref := uuid.NewString()
	tmpPath := filepath.Join(s.root, tmpPrefix+ref)

	dst, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	hasher := sha256.New()
	size, err := io.Copy(io.MultiWriter(dst, hasher), src)
	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return nil, err
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return nil, err
	}
	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, err
	}
	if err := os.Rename(tmpPath, filepath.Join(s.root, ref)); err != nil {
		os.Remove(tmpPath)
		return nil, err
	}

	return &BlobInfo{
		Ref:    ref,
		Size:   size,
		SHA256: hex.EncodeToString(hasher.Sum(nil)),
	}, nil
}

func (s *DiskBlobStore) Open(ref string) (io.ReadSeekCloser, error) {
	path, err := s.Path(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func (s *DiskBlobStore) Path(ref string) (string, error) {
	if err := validateRef(ref); err != nil {
		return "", err
	}
	return filepath.Join(s.root, ref), nil
}

func (s *DiskBlobStore) Exists(ref string) bool {
	path, err := s.Path(ref)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (s *DiskBlobStore) Remove(ref string) error {
	path, err := s.Path(ref)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Refs lists every committed blob in the store; in-flight temp files are
// excluded.
func (s *DiskBlobStore) Refs() ([]BlobRef, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	refs := make([]BlobRef, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tmpPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		refs = append(refs, BlobRef{Ref: entry.Name(), ModTime: info.ModTime()})
	}
	return refs, nil
}

func validateRef(ref string) error {
	if ref == "" || strings.ContainsAny(ref, "/\\") || strings.Contains(ref, "..") {
		return fmt.Errorf("invalid blob reference %q", ref)
	}
	return nil
}
