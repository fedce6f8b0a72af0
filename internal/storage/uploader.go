package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

type Uploader struct {
	bucket string
}

func NewUploader(bucket string) *Uploader {
	return &Uploader{bucket: bucket}
}

// UploadProductImage writes the image under farms/<farmID>/products/ with a
// Firebase download token and returns the tokenized public URL.
func (u *Uploader) UploadProductImage(ctx context.Context, farmID uint64, data []byte, contentType string) (string, error) {
	if u == nil || u.bucket == "" {
		return "", errors.New("STORAGE_BUCKET is not set")
	}
	if len(data) == 0 {
		return "", errors.New("image is required")
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	client, err := gcs.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	token := uuid.NewString()
	objectPath := fmt.Sprintf("farms/%d/products/%s", farmID, uuid.NewString())
	obj := client.Bucket(u.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.bucket, escapedPath, token)
	return publicURL, nil
}
