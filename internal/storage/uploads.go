package storage

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	appconfig "ouveo-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var allowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".pdf":  "application/pdf",
}

// UploadStore saves multipart uploads under a local directory served as
// static files. When an S3 bucket is configured every saved file is also
// mirrored there; mirror failures are logged, never fatal.
type UploadStore struct {
	dir      string
	maxBytes int64
	bucket   string
	s3client *s3.Client
}

// NewUploadStore prepares the uploads directory and, if configured, the S3
// mirror client.
func NewUploadStore(cfg *appconfig.Config) (*UploadStore, error) {
	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads dir: %w", err)
	}

	store := &UploadStore{
		dir:      cfg.Uploads.Dir,
		maxBytes: int64(cfg.Uploads.MaxSizeMB) << 20,
		bucket:   cfg.Uploads.S3Bucket,
	}

	if cfg.Uploads.S3Bucket != "" && cfg.Uploads.S3AccessKey != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.Uploads.S3AccessKey,
				cfg.Uploads.S3SecretKey,
				"",
			)),
			awsconfig.WithRegion(cfg.Uploads.S3Region),
		)
		if err != nil {
			return nil, fmt.Errorf("configuring s3 mirror: %w", err)
		}
		store.s3client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Uploads.S3Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Uploads.S3Endpoint)
			}
		})
		log.Printf("[Storage] S3 mirror enabled (bucket %s)", cfg.Uploads.S3Bucket)
	}

	return store, nil
}

// Dir returns the local uploads directory for static serving.
func (s *UploadStore) Dir() string {
	return s.dir
}

// Save writes an uploaded file under subdir and returns its relative path
// ("subdir/name.ext"). Names are random, never taken from the client.
func (s *UploadStore) Save(ctx context.Context, file multipart.File, header *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("file type %q is not allowed", ext)
	}
	if s.maxBytes > 0 && header.Size > s.maxBytes {
		return "", fmt.Errorf("file exceeds the %d MB limit", s.maxBytes>>20)
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	name := hex.EncodeToString(buf) + ext
	relPath := filepath.Join(subdir, name)

	if err := os.MkdirAll(filepath.Join(s.dir, subdir), 0o755); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(file, s.maxBytes+1))
	if err != nil {
		return "", err
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("file exceeds the %d MB limit", s.maxBytes>>20)
	}

	if err := os.WriteFile(filepath.Join(s.dir, relPath), data, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}

	s.mirror(ctx, relPath, data, contentType)
	return filepath.ToSlash(relPath), nil
}

// Delete removes a stored file locally and from the mirror.
func (s *UploadStore) Delete(ctx context.Context, relPath string) {
	if relPath == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(relPath))); err != nil && !os.IsNotExist(err) {
		log.Printf("[Storage] removing %s: %v", relPath, err)
	}
	if s.s3client != nil {
		if _, err := s.s3client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(filepath.ToSlash(relPath)),
		}); err != nil {
			log.Printf("[Storage] S3 delete of %s: %v", relPath, err)
		}
	}
}

func (s *UploadStore) mirror(ctx context.Context, relPath string, data []byte, contentType string) {
	if s.s3client == nil {
		return
	}
	_, err := s.s3client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(filepath.ToSlash(relPath)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("[Storage] S3 mirror of %s: %v", relPath, err)
	}
}
