package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"synth911/errors"
	"synth911/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the application,
// e.g. SYNTH911_NUM_RECORDS.
const EnvPrefix = "SYNTH911"

// DefaultConfigName is the config file looked up when no path is given.
const DefaultConfigName = "synth911"

// Settings holds all configuration for the application
type Settings struct {
	NumRecords int    `mapstructure:"num_records"`
	StartDate  string `mapstructure:"start_date"`
	EndDate    string `mapstructure:"end_date"`
	NumNames   int    `mapstructure:"num_names"`
	Locale     string `mapstructure:"locale"`
	// Agencies and AgencyProbabilities are comma separated lists.
	Agencies            string `mapstructure:"agencies"`
	AgencyProbabilities string `mapstructure:"agency_probabilities"`
	// Seed is empty for a random seed.
	Seed string `mapstructure:"seed"`

	Output   string `mapstructure:"output"`
	Format   string `mapstructure:"format"`
	Roster   string `mapstructure:"roster"`
	LogLevel string `mapstructure:"log_level"`

	// Server configuration
	Port int `mapstructure:"port"`

	// Metrics configuration
	MetricsAddr string `mapstructure:"metrics_addr"`
	PushURL     string `mapstructure:"push_url"`
}

// Formats lists the output formats accepted by the generate command.
var Formats = []string{"csv", "json", "sqlite"}

// New returns a viper instance with defaults and environment lookup set up.
// Callers may bind command line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("num_records", 10000)
	v.SetDefault("start_date", "2024-01-01")
	v.SetDefault("end_date", "2024-12-31")
	v.SetDefault("num_names", 8)
	v.SetDefault("locale", "en_US")
	v.SetDefault("agencies", "")
	v.SetDefault("agency_probabilities", "")
	v.SetDefault("seed", "")

	v.SetDefault("output", "computer_aided_dispatch.csv")
	v.SetDefault("format", "csv")
	v.SetDefault("roster", "")
	v.SetDefault("log_level", "info")

	v.SetDefault("port", 8911)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("push_url", "")
}

// Load reads configuration layered as defaults, config file, .env file,
// environment variables and finally any flags bound to v. An empty path
// looks for synth911.yaml in the working directory and ./config; a missing
// default file is not an error.
func Load(v *viper.Viper, path string) (*Settings, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&settings); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &settings, nil
}

func validate(s *Settings) error {
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	valid := false
	for _, f := range Formats {
		if s.Format == f {
			valid = true
		}
	}
	if !valid {
		return &errors.ConfigurationError{Field: "format", Value: s.Format, Err: errors.ErrInvalidFormat}
	}
	if s.Port <= 0 || s.Port > 65535 {
		return &errors.ConfigurationError{Field: "port", Value: s.Port, Err: errors.ErrInvalidPort}
	}
	return nil
}

// GenerationConfig converts the settings into a generation request.
// Malformed agency probabilities or seeds are reported as
// *errors.ConfigurationError; every other check is left to the generator.
func (s *Settings) GenerationConfig() (models.Config, error) {
	cfg := models.Config{
		NumRecords: s.NumRecords,
		StartDate:  s.StartDate,
		EndDate:    s.EndDate,
		NumNames:   s.NumNames,
		Locale:     s.Locale,
		Agencies:   splitList(s.Agencies),
	}

	for _, raw := range splitList(s.AgencyProbabilities) {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.Config{}, &errors.ConfigurationError{
				Field: "agency_probabilities",
				Value: s.AgencyProbabilities,
				Err:   fmt.Errorf("%w: %q", errors.ErrInvalidProbability, raw),
			}
		}
		cfg.AgencyProbabilities = append(cfg.AgencyProbabilities, p)
	}

	if seed := strings.TrimSpace(s.Seed); seed != "" {
		n, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return models.Config{}, &errors.ConfigurationError{Field: "seed", Value: s.Seed, Err: errors.ErrInvalidSeed}
		}
		cfg.Seed = &n
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
