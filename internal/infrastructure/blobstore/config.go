package blobstore

type Config struct {
	Path           string `yaml:"path"`
	QuotaBytes     int64  `yaml:"quota_bytes"`
	WarnUsageRatio float64 `yaml:"warn_usage_ratio"`
}

func (c Config) withDefaults() Config {
	if c.QuotaBytes <= 0 {
		c.QuotaBytes = 2 << 30
	}
	if c.WarnUsageRatio <= 0 || c.WarnUsageRatio >= 1 {
		c.WarnUsageRatio = 0.8
	}
	return c
}
