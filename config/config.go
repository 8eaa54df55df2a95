package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"propmedia/internal/infrastructure/blobstore"
	"propmedia/internal/infrastructure/broker"
	"propmedia/internal/infrastructure/database"
	"propmedia/internal/infrastructure/minio"
	"propmedia/internal/infrastructure/processing"
	"propmedia/pkg/logger"
	"propmedia/pkg/retry"
)

// Config represents the configs used by services on system.
type Config struct {
	Environment     string                      `yaml:"environment"`
	HTTPServer      HTTPServerConfig            `yaml:"http_server"`
	MinIOClient     minio.ClientConfig          `yaml:"minio_client"`
	MinIOUploader   minio.UploaderConfig        `yaml:"minio_uploader"`
	MinIORemover    minio.RemoverConfig         `yaml:"minio_remover"`
	DBConfig        database.Config             `yaml:"db_config"`
	BrokerConfig    broker.Config               `yaml:"redis_broker_config"`
	PublisherConfig broker.PublisherConfig      `yaml:"publisher_config"`
	BlobStore       blobstore.Config            `yaml:"blob_store"`
	Validator       processing.ValidatorConfig  `yaml:"validator"`
	Compressor      processing.CompressorConfig `yaml:"compressor"`
	Thumbnails      processing.ThumbnailConfig  `yaml:"thumbnails"`
	UploadRetry     retry.Policy                `yaml:"upload_retry"`
	Logger          logger.Config               `yaml:"logger"`
}

type HTTPServerConfig struct {
	Address   string `yaml:"address"`
	BodyLimit string `yaml:"body_limit"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}
	defer file.Close()

	config := &Config{}

	decoder := yaml.NewDecoder(file)

	if err := decoder.Decode(config); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	if config.Environment != "prod" {
		// a missing .env is fine in dev, explicit env vars still apply
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, Error{
				reason: err.Error(),
			}
		}
	}

	if v := os.Getenv("MINIO_ROOT_USER"); v != "" {
		config.MinIOClient.AccessKey = v
	}
	if v := os.Getenv("MINIO_ROOT_PASSWORD"); v != "" {
		config.MinIOClient.SecretKey = v
	}
	if v := os.Getenv("DATABASE_URI"); v != "" {
		config.DBConfig.URI = v
	}
	if v := os.Getenv("BROKER_URI"); v != "" {
		config.BrokerConfig.URI = v
	}

	if err := config.basicCheck(); err != nil {
		return nil, Error{
			reason: err.Error(),
		}
	}

	return config, nil
}

// basicCheck validates the basic stuff in config.
func (c *Config) basicCheck() error {
	if c.HTTPServer.Address == "" {
		return errors.New("http_server.address is required")
	}

	if c.MinIOClient.Endpoint == "" || c.MinIOClient.Bucket == "" {
		return errors.New("minio_client.endpoint and minio_client.bucket are required")
	}

	if c.BlobStore.Path == "" {
		return errors.New("blob_store.path is required")
	}

	return nil
}
