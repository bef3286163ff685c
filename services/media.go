package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// MediaStore uploads an image blob and returns a durable URL. Uploads that
// succeed without a matching metadata row are an accepted leak; there is no
// cleanup path.
type MediaStore interface {
	Upload(ctx context.Context, r io.Reader, folder string) (string, error)
}

// CloudinaryMediaStore pushes images to Cloudinary.
type CloudinaryMediaStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryMediaStore() (*CloudinaryMediaStore, error) {
	cld, err := cloudinary.New() // reads CLOUDINARY_URL
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryMediaStore{cld: cld}, nil
}

func (s *CloudinaryMediaStore) Upload(ctx context.Context, r io.Reader, folder string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

// LocalMediaStore writes images under BaseDir and returns URLs below /uploads,
// which the router serves statically. Development fallback when Cloudinary is
// not configured.
type LocalMediaStore struct {
	BaseDir string
	BaseURL string
}

func NewLocalMediaStore(baseDir, baseURL string) *LocalMediaStore {
	return &LocalMediaStore{BaseDir: baseDir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalMediaStore) Upload(_ context.Context, r io.Reader, folder string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	dir := filepath.Join(s.BaseDir, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.BaseURL + "/uploads/" + filepath.ToSlash(filepath.Join(folder, filename)), nil
}

// NewMediaStoreFromEnv picks Cloudinary when CLOUDINARY_URL is set and falls
// back to local disk otherwise.
func NewMediaStoreFromEnv() MediaStore {
	if os.Getenv("CLOUDINARY_URL") != "" {
		store, err := NewCloudinaryMediaStore()
		if err == nil {
			return store
		}
		log.Printf("warning: cloudinary init failed, falling back to local uploads: %v", err)
	}
	base := os.Getenv("PUBLIC_BASE_URL")
	return NewLocalMediaStore("uploads", base)
}
