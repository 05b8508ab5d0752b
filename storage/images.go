package storage

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"nagoyameshi/tools"
)

const MaxImageSize = 2 * 1024 * 1024

var (
	ErrTooLarge        = errors.New("storage: image exceeds 2MB")
	ErrUnsupportedType = errors.New("storage: unsupported image type")
)

// Accepted extensions and the MIME type each one has to sniff as.
var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".bmp":  "image/bmp",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
}

// ImageStore keeps restaurant images on disk. Records only hold the file name.
type ImageStore struct {
	Dir string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{Dir: dir}
}

// Save validates and writes an uploaded image, returning the stored file name.
func (s *ImageStore) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxImageSize {
		return "", ErrTooLarge
	}
	f, err := header.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.Write(header.Filename, f)
}

// Write validates content read from r against the extension of name and stores it.
func (s *ImageStore) Write(name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	want, ok := imageTypes[ext]
	if !ok {
		return "", ErrUnsupportedType
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxImageSize {
		return "", ErrTooLarge
	}
	if !mimetype.Detect(data).Is(want) {
		return "", ErrUnsupportedType
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	file := tools.RandomString(40) + ext
	out, err := os.Create(filepath.Join(s.Dir, file))
	if err != nil {
		return "", err
	}
	defer out.Close()
	if _, err := io.Copy(out, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return file, nil
}

// Path returns the location of a stored image, or "" for names that would
// escape the directory.
func (s *ImageStore) Path(name string) string {
	if name == "" || name != filepath.Base(name) {
		return ""
	}
	return filepath.Join(s.Dir, name)
}

// Remove deletes a stored image. Missing files are not an error.
func (s *ImageStore) Remove(name string) error {
	p := s.Path(name)
	if p == "" {
		return nil
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
