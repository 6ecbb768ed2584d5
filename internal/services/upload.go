package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// UploadStore keeps media attachments on local disk under a single
// directory and hands back the public URL they are served from.
type UploadStore struct {
	dir string
}

func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{dir: dir}, nil
}

// Dir returns the directory uploads are stored in, for static serving.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file into the store and returns its URL path.
// The client-supplied name is reduced to its base to keep the file inside
// the upload directory.
func (s *UploadStore) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := filepath.Base(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(s.dir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
