package configs

import (
	"fmt"
	"strings"

	"hostprobe/internal/shared/validators"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultPort = 3000

	EnvPort          = "APP_PORT"
	EnvLogLevel      = "LOG_LEVEL"
	EnvStaticRootDir = "STATIC_ROOT_DIR"

	FlagPort     = "port"
	FlagLogLevel = "log-level"
)

// LoadConfig builds the configuration from defaults, an optional YAML file,
// environment variables and command-line flags, in increasing precedence.
// configPath and flags may be empty.
var LoadConfig = func(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	envBindings := map[string]string{
		"server.port":     EnvPort,
		"log.level":       EnvLogLevel,
		"static.root_dir": EnvStaticRootDir,
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if flags != nil {
		flagBindings := map[string]string{
			"server.port": FlagPort,
			"log.level":   FlagLogLevel,
		}
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
				}
			}
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validators.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validators.Messages(err), ", "))
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("log.level", "info")
	v.SetDefault("static.root_dir", "./www")
}
