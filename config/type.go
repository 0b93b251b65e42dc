package config

type Config struct {
	ServerURL    string `mapstructure:"server_url" validate:"required,url"`
	LogLevel     string `mapstructure:"log_level"`
	DataDir      string `mapstructure:"data_dir" validate:"required"`
	ReconnectMS  int    `mapstructure:"reconnect_ms" validate:"gte=0"`
	HistoryLimit int    `mapstructure:"history_limit" validate:"gte=0"`
}

// applyDefaults fills the values the file may omit. The 3000ms reconnect
// delay matches the server's expectations for client retry pacing.
func (c *Config) applyDefaults() {
	if c.ReconnectMS == 0 {
		c.ReconnectMS = 3000
	}
	if c.HistoryLimit == 0 {
		c.HistoryLimit = 50
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
