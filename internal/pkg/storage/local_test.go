package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	ctx := context.Background()
	base := filepath.Join(t.TempDir(), "exports")

	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	path, err := s.Save(ctx, strings.NewReader("hello"), "a.xlsx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "a.xlsx"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))

	exists, err := s.Exists(ctx, "a.xlsx")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Exists(ctx, "b.xlsx")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), strings.NewReader("x"), "../escape.xlsx")
	assert.Error(t, err)

	_, err = s.Exists(context.Background(), "../../etc/passwd")
	assert.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestLocalStorage_FailedWriteLeavesNothing(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base)
	require.NoError(t, err)

	_, err = s.Save(context.Background(), failingReader{}, "broken.xlsx")
	require.Error(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
