// Package object stores uploaded media (experience images, user
// avatars) on an afero filesystem and serves them back over a public
// URL prefix. The filesystem is pluggable so tests run fully in memory.
package object

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"path"
	"strings"

	"github.com/spf13/afero"

	"volentia/internal/core/apperror"
	"volentia/internal/core/id"
)

// Allowed upload content types, mapped to their stored extension.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize = 5 << 20

// Storage writes objects under root on fs and exposes them at publicBase.
type Storage struct {
	fs         afero.Fs
	root       string
	publicBase string
}

// New creates object storage on the given filesystem.
func New(fs afero.Fs, root, publicBase string) *Storage {
	return &Storage{
		fs:         fs,
		root:       strings.TrimRight(root, "/"),
		publicBase: strings.TrimRight(publicBase, "/"),
	}
}

// NewOnDisk creates object storage backed by the host filesystem.
func NewOnDisk(root, publicBase string) *Storage {
	return New(afero.NewOsFs(), root, publicBase)
}

// Upload stores content under the given bucket and returns the public URL.
// The object name is generated, so uploads never collide or overwrite.
func (s *Storage) Upload(ctx context.Context, bucket, contentType string, content io.Reader) (string, error) {
	ext, ok := allowedTypes[normalizeContentType(contentType)]
	if !ok {
		return "", apperror.NewValidation("Formato file non supportato").
			WithDetail("content_type", contentType)
	}
	if err := checkBucket(bucket); err != nil {
		return "", err
	}

	name := id.New().String() + ext
	dir := path.Join(s.root, bucket)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create bucket %s: %w", bucket, err)
	}

	f, err := s.fs.Create(path.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}

	written, err := io.Copy(f, io.LimitReader(content, MaxUploadSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = s.fs.Remove(path.Join(dir, name))
		return "", fmt.Errorf("write object: %w", err)
	}
	if written > MaxUploadSize {
		_ = s.fs.Remove(path.Join(dir, name))
		return "", apperror.NewValidation("File troppo grande").
			WithDetail("max_bytes", MaxUploadSize)
	}

	return s.publicBase + "/" + bucket + "/" + name, nil
}

// Remove deletes the object behind a public URL. Unknown URLs are ignored
// so callers can clean up references without checking first.
func (s *Storage) Remove(ctx context.Context, publicURL string) error {
	rel, ok := strings.CutPrefix(publicURL, s.publicBase+"/")
	if !ok {
		return nil
	}
	rel = path.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return nil
	}

	err := s.fs.Remove(path.Join(s.root, rel))
	if err != nil && !isNotExist(err) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

// Open returns the stored object behind a public URL for serving.
func (s *Storage) Open(ctx context.Context, publicURL string) (io.ReadCloser, error) {
	rel, ok := strings.CutPrefix(publicURL, s.publicBase+"/")
	if !ok {
		return nil, apperror.NewNotFound("object", publicURL)
	}
	rel = path.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return nil, apperror.NewNotFound("object", publicURL)
	}

	f, err := s.fs.Open(path.Join(s.root, rel))
	if err != nil {
		if isNotExist(err) {
			return nil, apperror.NewNotFound("object", publicURL)
		}
		return nil, fmt.Errorf("open object: %w", err)
	}
	return f, nil
}

func checkBucket(bucket string) error {
	if bucket == "" || strings.ContainsAny(bucket, "/\\.") {
		return apperror.NewValidation("invalid bucket").WithDetail("bucket", bucket)
	}
	return nil
}

func normalizeContentType(ct string) string {
	parsed, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return parsed
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
