package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is the PNG signature followed by an IHDR chunk start.
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func pngOfSize(size int) []byte {
	data := make([]byte, size)
	copy(data, pngHeader)
	return data
}

func TestSaveFile(t *testing.T) {
	testCases := []struct {
		name        string
		upload      func() Upload
		wantExt     string
		wantMessage string
	}{
		{
			name: "Valid png",
			upload: func() Upload {
				data := pngOfSize(2048)
				return Upload{Name: "serum.PNG", Size: int64(len(data)), Content: bytes.NewReader(data)}
			},
			wantExt: ".png",
		},
		{
			name: "Valid jpeg",
			upload: func() Upload {
				data := make([]byte, 2048)
				copy(data, []byte{0xff, 0xd8, 0xff, 0xe0, 0, 0x10, 'J', 'F', 'I', 'F', 0})
				return Upload{Name: "mask.jpeg", Size: int64(len(data)), Content: bytes.NewReader(data)}
			},
			wantExt: ".jpeg",
		},
		{
			name: "Extension check is exact",
			upload: func() Upload {
				data := pngOfSize(64)
				return Upload{Name: "photo.pn", Size: int64(len(data)), Content: bytes.NewReader(data)}
			},
			wantMessage: "Only .jpeg, .jpg, .png files allowed",
		},
		{
			name: "Declared size over limit",
			upload: func() Upload {
				data := pngOfSize(2 << 20)
				return Upload{Name: "big.png", Size: int64(len(data)), Content: bytes.NewReader(data)}
			},
			wantMessage: "Image file cannot exceed 1 MB",
		},
		{
			name: "Actual content over limit",
			upload: func() Upload {
				data := pngOfSize(2 << 20)
				return Upload{Name: "liar.png", Size: 10, Content: bytes.NewReader(data)}
			},
			wantMessage: "Image file cannot exceed 1 MB",
		},
		{
			name: "Extension not allowed",
			upload: func() Upload {
				return Upload{Name: "notes.gif", Size: 4, Content: strings.NewReader("GIF8")}
			},
			wantMessage: "Only .jpeg, .jpg, .png files allowed",
		},
		{
			name: "Content is not an image",
			upload: func() Upload {
				return Upload{Name: "script.png", Size: 11, Content: strings.NewReader("#!/bin/sh\nx")}
			},
			wantMessage: "File content is not a valid image",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			dir := t.TempDir()
			store := NewFileStore(dir, 1<<20)

			// Act
			name, err := store.SaveFile(tc.upload(), ImageExtensions)

			// Assert
			if tc.wantMessage != "" {
				require.Error(t, err)
				assert.Equal(t, apperr.KindIO, apperr.KindOf(err))
				assert.Equal(t, tc.wantMessage, apperr.Message(err))
				entries, _ := os.ReadDir(dir)
				assert.Empty(t, entries, "nothing should be left on disk")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantExt, filepath.Ext(name))
			info, err := os.Stat(filepath.Join(dir, name))
			require.NoError(t, err)
			assert.Equal(t, int64(2048), info.Size())
		})
	}
}

func TestDeleteFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, 1<<20)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.png"), pngHeader, 0o644))

	assert.NoError(t, store.DeleteFile("old.png"))
	assert.NoFileExists(t, filepath.Join(dir, "old.png"))
	assert.NoError(t, store.DeleteFile("old.png"), "missing file is not an error")
	assert.Error(t, store.DeleteFile("../etc/passwd"))
}
