package minio

type ClientConfig struct {
	AccessKey     string
	SecretKey     string
	Endpoint      string `yaml:"endpoint"`
	Bucket        string `yaml:"bucket"`
	UseSSL        bool   `yaml:"use_ssl"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type UploaderConfig struct {
	Timeout int64 `yaml:"timeout_in_ms"`
}

type RemoverConfig struct {
	Timeout int64 `yaml:"timeout_in_ms"`
}
