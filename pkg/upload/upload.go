// Package upload stores multipart image uploads on local disk and serves them under /uploads/.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/nutribakery/pkg/apperr"
)

const defaultMaxMemory = 10 << 20

var imageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// Store writes files into dir and builds public URLs from baseURL
type Store struct {
	dir     string
	baseURL string
}

func NewStore(dir, baseURL string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Store{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// ParseForm parses a multipart body once per request
func ParseForm(r *http.Request) error {
	if r.MultipartForm != nil {
		return nil
	}
	if err := r.ParseMultipartForm(defaultMaxMemory); err != nil {
		return apperr.New(apperr.KindValidation, "Invalid multipart form", err)
	}
	return nil
}

// SaveImage stores the single image in field. ok is false when the field is absent.
func (s *Store) SaveImage(r *http.Request, field string) (url string, ok bool, err error) {
	if err := ParseForm(r); err != nil {
		return "", false, err
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return "", false, nil
	}
	url, err = s.save(headers[0])
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

// SaveImages stores up to max images from field
func (s *Store) SaveImages(r *http.Request, field string, max int) ([]string, error) {
	if err := ParseForm(r); err != nil {
		return nil, err
	}
	headers := r.MultipartForm.File[field]
	if len(headers) > max {
		return nil, apperr.Validation(fmt.Sprintf("at most %d files allowed in %s", max, field))
	}

	urls := make([]string, 0, len(headers))
	for _, h := range headers {
		url, err := s.save(h)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Handler serves stored files; mount it under /uploads/
func (s *Store) Handler() http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.dir)))
}

func (s *Store) save(h *multipart.FileHeader) (string, error) {
	src, err := h.Open()
	if err != nil {
		return "", apperr.New(apperr.KindValidation, "Unable to read uploaded file", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return "", apperr.New(apperr.KindValidation, "Unable to read uploaded file", err)
	}
	ext, allowed := imageTypes[http.DetectContentType(head[:n])]
	if !allowed {
		return "", apperr.Validation("Only JPEG and PNG images are allowed")
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", apperr.Storage("failed to store upload", err)
	}
	defer dst.Close()

	if _, err := dst.Write(head[:n]); err != nil {
		return "", apperr.Storage("failed to store upload", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return "", apperr.Storage("failed to store upload", err)
	}

	return s.baseURL + "/uploads/" + name, nil
}
