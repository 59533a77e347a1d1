package service

import (
	"context"
	"ecopulse_backend/internal/config"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageProvider abstracts where uploaded files land. Local disk is
// the development default; minio covers S3-compatible deployments.
type StorageProvider interface {
	SaveUpload(file *multipart.FileHeader, key string) (string, error)
	Save(reader io.Reader, key string, size int64, contentType string) (string, error)
	Remove(key string) error
}

func NewStorageProvider(cfg config.StorageConfig) (StorageProvider, error) {
	switch cfg.Type {
	case "minio":
		return newMinioStorage(cfg)
	case "local", "":
		return &LocalStorage{BasePath: cfg.LocalPath}, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

type LocalStorage struct {
	BasePath string
}

func (s *LocalStorage) SaveUpload(file *multipart.FileHeader, key string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.Save(src, key, file.Size, file.Header.Get("Content-Type"))
}

func (s *LocalStorage) Save(reader io.Reader, key string, size int64, contentType string) (string, error) {
	fullPath := filepath.Join(s.BasePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return "/uploads/" + key, nil
}

func (s *LocalStorage) Remove(key string) error {
	return os.Remove(filepath.Join(s.BasePath, filepath.FromSlash(key)))
}

type MinioStorage struct {
	client *minio.Client
	bucket string
	base   string
}

func newMinioStorage(cfg config.StorageConfig) (*MinioStorage, error) {
	useSSL := !strings.HasPrefix(cfg.MinioEndpoint, "localhost") &&
		!strings.HasPrefix(cfg.MinioEndpoint, "127.0.0.1")

	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client init failed: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check failed: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio bucket create failed: %w", err)
		}
	}

	scheme := "http"
	if useSSL {
		scheme = "https"
	}

	return &MinioStorage{
		client: client,
		bucket: cfg.MinioBucket,
		base:   fmt.Sprintf("%s://%s/%s", scheme, cfg.MinioEndpoint, cfg.MinioBucket),
	}, nil
}

func (s *MinioStorage) SaveUpload(file *multipart.FileHeader, key string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.Save(src, key, file.Size, file.Header.Get("Content-Type"))
}

func (s *MinioStorage) Save(reader io.Reader, key string, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(context.Background(), s.bucket, key, reader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return s.base + "/" + key, nil
}

func (s *MinioStorage) Remove(key string) error {
	return s.client.RemoveObject(context.Background(), s.bucket, key, minio.RemoveObjectOptions{})
}
