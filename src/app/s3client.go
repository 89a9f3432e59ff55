package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"carscout/src/repository"
)

type ClientMinio interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// MinioS3Client is the blob-store collaborator backed by an S3-compatible
// object store. Uploaded objects are addressed by their public URL; deletes
// take that URL back apart.
type MinioS3Client struct {
	endpoint   string
	bucketName string
	useSSL     bool
	client     ClientMinio
}

const defaultContentType = "image/jpeg"

// NewMinioS3Client creates a new MinioS3Client instance.
func NewMinioS3Client(endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool) (*MinioS3Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		log.Printf("can not create minio client for %s: %v", endpoint, err)
		return nil, fmt.Errorf("failed to create Minio S3 client: %w", err)
	}

	return &MinioS3Client{
		endpoint:   endpoint,
		bucketName: bucketName,
		useSSL:     useSSL,
		client:     minioClient,
	}, nil
}

// UploadFile stores the object under path and returns its public URL.
func (s3 *MinioS3Client) UploadFile(ctx context.Context, path string, data io.Reader, size int64) (string, error) {
	_, err := s3.client.PutObject(ctx,
		s3.bucketName,
		path,
		data,
		size,
		minio.PutObjectOptions{ContentType: defaultContentType})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}
	return s3.objectURL(path), nil
}

// DeleteFile removes the object a URL points at. A missing object is
// reported as repository.ErrBlobNotFound so cleanup passes can skip it.
func (s3 *MinioS3Client) DeleteFile(ctx context.Context, fileURL string) error {
	objectName, err := s3.objectName(fileURL)
	if err != nil {
		return err
	}
	if _, err := s3.client.StatObject(ctx, s3.bucketName, objectName, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return fmt.Errorf("%s: %w", fileURL, repository.ErrBlobNotFound)
		}
		return fmt.Errorf("stat %s: %w", objectName, err)
	}
	if err := s3.client.RemoveObject(ctx, s3.bucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", objectName, err)
	}
	return nil
}

func (s3 *MinioS3Client) objectURL(path string) string {
	scheme := "http"
	if s3.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s3.endpoint, s3.bucketName, path)
}

func (s3 *MinioS3Client) objectName(fileURL string) (string, error) {
	parsed, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("bad object url %q: %w", fileURL, err)
	}
	name := strings.TrimPrefix(parsed.Path, "/")
	name = strings.TrimPrefix(name, s3.bucketName+"/")
	if name == "" {
		return "", fmt.Errorf("bad object url %q: empty object name", fileURL)
	}
	return name, nil
}
