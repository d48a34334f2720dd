package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix            = "PAIRCHAT"
	envConfigDefaultPath = "PAIRCHAT_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"
)

// Load resolves the config file path, merges defaults, that file and
// PAIRCHAT_* variables (in that order of precedence), validates the result
// and returns it with the path it used. A missing file is created with the
// defaults.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	cfg := Default()
	configPath := resolveConfigPath(explicitPath)

	v, err := newViper(cfg, configPath)
	if err != nil {
		return cfg, configPath, err
	}
	if err := readOrCreate(v, configPath, cfg, logger); err != nil {
		return cfg, configPath, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, configPath, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, configPath, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, configPath, nil
}

func newViper(defaults Config, configPath string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configPath)

	for key, value := range map[string]any{
		"addr":                defaults.Addr,
		"read_header_timeout": defaults.ReadHeaderTimeout,
		"shutdown_timeout":    defaults.ShutdownTimeout,
		"log_level":           defaults.LogLevel,
		"log_format":          defaults.LogFormat,
		"max_message_bytes":   defaults.MaxMessageBytes,
		"messages_per_minute": defaults.MessagesPerMinute,
		"event_buffer":        defaults.EventBuffer,
		"receiver_policy":     defaults.ReceiverPolicy,
	} {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// allowed_origins has no default, so AutomaticEnv alone would not see it.
	if err := v.BindEnv("allowed_origins"); err != nil {
		return nil, fmt.Errorf("bind allowed_origins env: %w", err)
	}
	return v, nil
}

// readOrCreate reads the config file, writing the defaults first if it does
// not exist. Failing to write the default file only logs a warning.
func readOrCreate(v *viper.Viper, path string, defaults Config, logger *zerolog.Logger) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read config: %w", err)
	}

	if err := writeDefaultConfig(path, defaults); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("default config not written, using built-in defaults")
		return nil
	}
	logger.Info().Str("path", path).Msg("created default config")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read default config: %w", err)
	}
	return nil
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if base := os.Getenv(envConfigDefaultPath); base != "" {
		if err := os.MkdirAll(base, 0o755); err == nil {
			return filepath.Join(base, defaultConfigName)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}

func writeDefaultConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
