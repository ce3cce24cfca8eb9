// Package storage saves uploaded product images on local disk.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/mytheresa/shop-admin/app/apperr"
)

// ImageExtensions are the extensions accepted for product images.
var ImageExtensions = []string{".jpeg", ".jpg", ".png"}

var imageMIMETypes = []string{"image/jpeg", "image/png"}

const sniffLen = 3072

// Upload is a file received from a form.
type Upload struct {
	Name    string
	Size    int64
	Content io.Reader
}

type FileStore struct {
	dir      string
	maxBytes int64
}

func NewFileStore(dir string, maxBytes int64) *FileStore {
	return &FileStore{dir: dir, maxBytes: maxBytes}
}

// SaveFile validates size, extension and content type, then writes the upload
// under a fresh random name keeping its extension. It returns the stored name.
func (s *FileStore) SaveFile(upload Upload, allowedExtensions []string) (string, error) {
	if upload.Size > s.maxBytes {
		return "", apperr.IO(s.sizeMessage(), nil)
	}

	ext := strings.ToLower(filepath.Ext(upload.Name))
	if !slices.Contains(allowedExtensions, ext) {
		return "", apperr.IO(fmt.Sprintf("Only %s files allowed", strings.Join(allowedExtensions, ", ")), nil)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", apperr.IO("Image could not be read", err)
	}
	head = head[:n]
	if detected := mimetype.Detect(head); !slices.ContainsFunc(imageMIMETypes, detected.Is) {
		return "", apperr.IO("File content is not a valid image", nil)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apperr.IO("Image could not be saved", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperr.IO("Image could not be saved", err)
	}

	// the declared size can lie, so the copy is capped as well
	content := io.MultiReader(bytes.NewReader(head), upload.Content)
	written, err := io.Copy(f, io.LimitReader(content, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil || written > s.maxBytes {
		_ = os.Remove(path)
		if err != nil {
			return "", apperr.IO("Image could not be saved", err)
		}
		return "", apperr.IO(s.sizeMessage(), nil)
	}

	return name, nil
}

// DeleteFile removes a stored file. A missing file is not an error.
func (s *FileStore) DeleteFile(name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) sizeMessage() string {
	if s.maxBytes%(1<<20) == 0 {
		return fmt.Sprintf("Image file cannot exceed %d MB", s.maxBytes>>20)
	}
	return fmt.Sprintf("Image file cannot exceed %d bytes", s.maxBytes)
}

