package processing

type ValidatorConfig struct {
	MaxFileBytes     int64 `yaml:"max_file_bytes"`
	MaxVideoSeconds  int64 `yaml:"max_video_seconds"`
}

type CompressorConfig struct {
	MaxImageDimension  int   `yaml:"max_image_dimension"`
	MaxImageBytes      int64 `yaml:"max_image_bytes"`
	VideoMinBytes      int64 `yaml:"video_min_bytes"`
	VideoMaxHeight     int   `yaml:"video_max_height"`
	VideoCRF           int   `yaml:"video_crf"`
	AudioBitrate       string `yaml:"audio_bitrate"`
	Timeout            int64 `yaml:"timeout_in_ms"`
}

type ThumbnailConfig struct {
	ImageBound    int   `yaml:"image_bound"`
	ImageMaxBytes int64 `yaml:"image_max_bytes"`
	VideoBound    int   `yaml:"video_bound"`
	VideoMaxBytes int64 `yaml:"video_max_bytes"`
	Timeout       int64 `yaml:"timeout_in_ms"`
}

func (c ValidatorConfig) withDefaults() ValidatorConfig {
	if c.MaxFileBytes <= 0 {
		c.MaxFileBytes = 50 << 20
	}
	if c.MaxVideoSeconds <= 0 {
		c.MaxVideoSeconds = 30
	}
	return c
}

func (c CompressorConfig) withDefaults() CompressorConfig {
	if c.MaxImageDimension <= 0 {
		c.MaxImageDimension = 1920
	}
	if c.MaxImageBytes <= 0 {
		c.MaxImageBytes = 2 << 20
	}
	if c.VideoMinBytes <= 0 {
		c.VideoMinBytes = 10 << 20
	}
	if c.VideoMaxHeight <= 0 {
		c.VideoMaxHeight = 720
	}
	if c.VideoCRF <= 0 {
		c.VideoCRF = 28
	}
	if c.AudioBitrate == "" {
		c.AudioBitrate = "128k"
	}
	if c.Timeout <= 0 {
		c.Timeout = 120_000
	}
	return c
}

func (c ThumbnailConfig) withDefaults() ThumbnailConfig {
	if c.ImageBound <= 0 {
		c.ImageBound = 150
	}
	if c.ImageMaxBytes <= 0 {
		c.ImageMaxBytes = 50 << 10
	}
	if c.VideoBound <= 0 {
		c.VideoBound = 200
	}
	if c.VideoMaxBytes <= 0 {
		c.VideoMaxBytes = 40 << 10
	}
	if c.Timeout <= 0 {
		c.Timeout = 30_000
	}
	return c
}
