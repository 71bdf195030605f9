package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix prefixes every environment override, e.g. PAYROLL_SERVER_PORT
const EnvPrefix = "PAYROLL"

// Config holds all application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Logger LoggerConfig `mapstructure:"logger"`
	Export ExportConfig `mapstructure:"export"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	OutputPath string `mapstructure:"output_path" validate:"required"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
}

// ExportConfig holds workbook export configuration
type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxUploadBytes: 10 << 20,
		},
		Logger: LoggerConfig{
			Level:      "info",
			OutputPath: "stdout",
			Format:     "json",
		},
		Export: ExportConfig{
			OutputDir: "reports",
		},
	}
}

// Load reads an optional .env file, the optional YAML file at configPath
// and PAYROLL_* environment variables, in increasing precedence over the
// defaults. An empty configPath skips the file.
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.max_upload_bytes", d.Server.MaxUploadBytes)

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.output_path", d.Logger.OutputPath)
	v.SetDefault("logger.format", d.Logger.Format)

	v.SetDefault("export.output_dir", d.Export.OutputDir)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
