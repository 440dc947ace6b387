package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/credits"
	"github.com/agentstation/credits/pkg/constants"
	"github.com/agentstation/credits/pkg/errors"
)

// ConfigName is the config file looked up in the repository root.
const ConfigName = ".credits"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// ConfigFile is the config file that was read, if any.
	ConfigFile string

	// Root is the repository root.
	Root string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// Credits is the generator configuration.
	Credits credits.Config
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by the commands)
//  2. CREDITS_* environment variables
//  3. .env and .env.local in the working directory
//  4. Config file (file, or .credits.yaml in root)
//  5. Defaults
//
// Empty root and file fall back to CREDITS_ROOT and CREDITS_CONFIG.
func LoadConfig(root, file string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if root == "" {
		root = v.GetString("root")
	}
	if file == "" {
		file = v.GetString("config")
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(root)
		v.SetConfigType("yaml")
		v.SetConfigName(ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "read config file", err)
		}
	}

	config := &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),
		Root:       root,
		LogLevel:   v.GetString("log_level"),
		LogFormat:  v.GetString("log_format"),
		LogOutput:  v.GetString("log_output"),
	}

	if err := v.Unmarshal(&config.Credits); err != nil {
		return nil, errors.NewConfigError("config", "decode generator settings", err)
	}

	if abs, err := filepath.Abs(config.Root); err == nil {
		config.Root = abs
	}

	return config, nil
}

// setDefaults registers every key so AutomaticEnv also applies to
// Unmarshal.
func setDefaults(v *viper.Viper) {
	d := credits.DefaultConfig()
	v.SetDefault("root", ".")
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
	v.SetDefault("registry", d.RegistryPath)
	v.SetDefault("ledger", d.LedgerPath)
	v.SetDefault("header", d.HeaderTemplate)
	v.SetDefault("item", d.ItemFormat)
	v.SetDefault("mailmap", d.MailmapPath)
	v.SetDefault("snapshot", d.SnapshotPath)
	v.SetDefault("sort", d.Sort)
	v.SetDefault("since", d.Since)
	v.SetDefault("version", d.Version)
	v.SetDefault("min_commits", d.MinCommits)
	v.SetDefault("dry_run", d.DryRun)
}

// UpdateFromFlags updates config values from parsed command flags.
// Flag values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables that are already set, so .env.local
// only fills what .env left out.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}
