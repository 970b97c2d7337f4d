package object

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volentia/internal/core/apperror"
)

func newMemStorage() *Storage {
	return New(afero.NewMemMapFs(), "/data/objects", "/media")
}

func TestUploadAndOpen(t *testing.T) {
	s := newMemStorage()
	ctx := context.Background()

	url, err := s.Upload(ctx, "experiences", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/media/experiences/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	f, err := s.Open(ctx, url)
	require.NoError(t, err)
	defer f.Close()

	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
}

func TestUploadRejectsUnknownContentType(t *testing.T) {
	s := newMemStorage()

	_, err := s.Upload(context.Background(), "experiences", "application/pdf", strings.NewReader("x"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUploadRejectsOversizedContent(t *testing.T) {
	s := newMemStorage()

	big := io.LimitReader(neverEnding('a'), MaxUploadSize+10)
	_, err := s.Upload(context.Background(), "avatars", "image/jpeg", big)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUploadsDoNotCollide(t *testing.T) {
	s := newMemStorage()
	ctx := context.Background()

	first, err := s.Upload(ctx, "avatars", "image/jpeg", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := s.Upload(ctx, "avatars", "image/jpeg", strings.NewReader("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemove(t *testing.T) {
	s := newMemStorage()
	ctx := context.Background()

	url, err := s.Upload(ctx, "experiences", "image/webp", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, url))

	_, err = s.Open(ctx, url)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	// Removing again or removing a foreign URL is a no-op.
	require.NoError(t, s.Remove(ctx, url))
	require.NoError(t, s.Remove(ctx, "https://elsewhere.example/img.png"))
}

func TestOpenRejectsTraversal(t *testing.T) {
	s := newMemStorage()

	_, err := s.Open(context.Background(), "/media/../etc/passwd")
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

// neverEnding is an infinite reader of one repeated byte.
type neverEnding byte

func (b neverEnding) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(b)
	}
	return len(p), nil
}
