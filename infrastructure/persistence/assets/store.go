package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	pkgerrors "stockledger/pkg/errors"
)

// Store owns the lifecycle of uploaded binary assets beneath a single uploads
// root. Assets are grouped into one directory per collection tag and named
// with a millisecond timestamp prefix so concurrent uploads of files with the
// same original name cannot collide.
type Store struct {
	root   string
	logger *zap.Logger
}

// NewStore creates an asset store rooted at root
func NewStore(root string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, pkgerrors.NewStorageError("create uploads root", err)
	}
	return &Store{root: root, logger: logger}, nil
}

// Root returns the uploads root directory
func (s *Store) Root() string {
	return s.root
}

// Save writes the payload under the collection directory and returns the
// root-relative reference ("/uploads/<collection>/<file>") for the stored
// asset. A partially written file is removed before the error is reported.
func (s *Store) Save(collection, originalName string, payload io.Reader) (string, error) {
	dir := filepath.Join(s.root, collection)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", pkgerrors.NewStorageError("create asset directory", err)
	}

	now := time.Now().UnixMilli()
	name := sanitizeFilename(originalName)
	if name == "" {
		name = fmt.Sprintf("%s_%d.jpg", collection, now)
	}
	finalName := fmt.Sprintf("%d_%s", now, name)
	path := filepath.Join(dir, finalName)

	f, err := os.Create(path)
	if err != nil {
		return "", pkgerrors.NewStorageError("create asset file", err)
	}
	if _, err := io.Copy(f, payload); err != nil {
		f.Close()
		os.Remove(path)
		return "", pkgerrors.NewStorageError("write asset file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", pkgerrors.NewStorageError("close asset file", err)
	}

	s.logger.Debug("Stored asset",
		zap.String("collection", collection),
		zap.String("file", finalName),
	)

	return urlPrefix + collection + "/" + finalName, nil
}

// ResolvePath maps a stored reference back to a local file path, or "" when
// the reference is empty or does not point into the uploads tree.
func (s *Store) ResolvePath(reference string) string {
	ref, ok := ParseReference(reference)
	if !ok {
		return ""
	}
	return ref.LocalPath(s.root)
}

// Delete removes the asset behind reference. It reports true only when a file
// existed and was removed; a missing file or an unresolvable reference is
// false without an error. The parent directory is pruned if it became empty,
// best effort.
func (s *Store) Delete(reference string) (bool, error) {
	path := s.ResolvePath(reference)
	if path == "" {
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, pkgerrors.NewStorageError("delete asset file", err)
	}

	s.pruneEmptyDir(filepath.Dir(path))
	return true, nil
}

// pruneEmptyDir removes dir if it is empty. The uploads root itself is kept.
func (s *Store) pruneEmptyDir(dir string) {
	if dir == s.root || dir == "." || dir == string(filepath.Separator) {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}
	if err := os.Remove(dir); err != nil {
		s.logger.Debug("Could not prune empty asset directory",
			zap.String("dir", dir),
			zap.Error(err),
		)
	}
}

// sanitizeFilename reduces a client-supplied filename to [A-Za-z0-9._-],
// replacing every other rune with an underscore.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
