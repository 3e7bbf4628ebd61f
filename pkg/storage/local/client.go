package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Client writes uploaded invoice documents to a directory on local disk.
// Stored names are prefixed with a UUID so colliding client file names never
// overwrite each other.
type Client struct {
	dir string
}

// New ensures the upload directory exists and returns a client rooted there.
func New(dir string) (*Client, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &Client{dir: dir}, nil
}

// Dir returns the root the client writes under.
func (c *Client) Dir() string {
	return c.dir
}

// Save streams src to disk and returns the stored path.
func (c *Client) Save(ctx context.Context, fileName string, src io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := sanitizeFileName(fileName)
	if name == "" {
		return "", fmt.Errorf("file name is required")
	}

	path := filepath.Join(c.dir, fmt.Sprintf("%s_%s", uuid.NewString(), name))
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing file: %w", err)
	}
	return path, nil
}

// Remove deletes a previously stored file. Missing files are not an error.
func (c *Client) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == string(filepath.Separator) {
		return ""
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
