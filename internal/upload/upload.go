// Package upload stores post images on local disk.
//
// The create/update handlers accept an optional multipart "image" file. We
// write it into a single uploads directory and store the public path
// ("/uploads/<name>") on the post row; the server serves the directory as
// static files. Images referenced by deleted or re-imaged posts are left
// behind — at personal-blog scale the orphans cost kilobytes, and a cleanup
// pass would need reference counting across posts.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/xid"
)

// URLPrefix is the public path the stored files are served under.
const URLPrefix = "/uploads"

// Store saves uploaded images into a directory on local disk.
type Store struct {
	dir string
}

// NewStore creates the uploads directory if needed and returns a Store.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: creating directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes into, for the static file server.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes an uploaded file to disk and returns its public URL path.
//
// FILENAME COLLISIONS:
// The stored name is "<unix-nanos>-<xid><ext>". The nanosecond timestamp
// keeps names roughly sorted by upload time; the xid (which carries its own
// randomness) makes a collision practically impossible even for two uploads
// in the same nanosecond. The client's original filename is NOT trusted —
// only its extension survives, and only after filepath.Ext strips any path
// components an attacker might embed.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(header.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), xid.New().String(), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("upload: creating file %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		// Best effort: don't leave a truncated file behind.
		os.Remove(dst.Name())
		return "", fmt.Errorf("upload: writing file %s: %w", name, err)
	}

	return URLPrefix + "/" + name, nil
}
