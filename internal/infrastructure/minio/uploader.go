package minio

import (
	"bytes"
	"context"
	"time"

	"github.com/minio/minio-go/v7"

	"propmedia/internal/domain/entity"
)

type Uploader struct {
	client *Client
	cfg    *UploaderConfig
}

func NewUploader(client *Client, cfg *UploaderConfig) *Uploader {
	return &Uploader{
		client: client,
		cfg:    cfg,
	}
}

// UploadObject writes one object under the given key. A single object per
// call; composing retry behavior is the caller's concern.
func (u *Uploader) UploadObject(ctx context.Context, key string, data []byte, contentType string) (entity.RemoteObject, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(u.cfg.Timeout)*time.Millisecond)
	defer cancel()

	bucket := u.client.cfg.Bucket

	info, err := u.client.MinioClient.PutObject(ctx, bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return entity.RemoteObject{}, err
	}

	return entity.RemoteObject{
		Key:    key,
		Bucket: bucket,
		URL:    u.client.PublicURL(key),
		Size:   info.Size,
	}, nil
}
