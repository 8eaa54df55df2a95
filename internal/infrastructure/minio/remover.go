package minio

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"

	"propmedia/pkg/logger"
)

type Remover struct {
	client *Client
	cfg    *RemoverConfig
}

func NewRemover(client *Client, cfg *RemoverConfig) *Remover {
	return &Remover{
		client: client,
		cfg:    cfg,
	}
}

func (r *Remover) Remove(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Timeout)*time.Millisecond)
	defer cancel()

	err := r.client.MinioClient.RemoveObject(ctx, r.client.cfg.Bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		logger.Error("failed to remove object", "key", key, "err", err)

		return err
	}

	return nil
}
