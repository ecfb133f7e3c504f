package swerve

import (
	"strings"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"
)

// ServerOptions configures a server. The zero value is usable:
// address defaults to ":8080" and everything else stays off.
type ServerOptions struct {
	Address string `mapstructure:"address"`
	Verbose bool   `mapstructure:"verbose"`
	Debug   bool   `mapstructure:"debug"`

	// KeepTrailingSlashes leaves "/blog/" distinct from "/blog".
	KeepTrailingSlashes bool `mapstructure:"keep_trailing_slashes"`

	// Read/WriteTimeout, when non-zero, set per-request connection
	// deadlines. Both default to zero: the original contract carries
	// no deadlines at all.
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// MaxBodyBytes, when non-zero, rejects requests whose declared
	// Content-Length exceeds it with a 400 before allocating anything.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`

	Log LogOptions `mapstructure:"log"`

	// StatusChan, when non-nil, receives one value as the server is
	// about to enter its accept loop. Buffer it (cap 1) or the server
	// will hang.
	StatusChan chan struct{} `mapstructure:"-"`
}

// LogOptions configures the optional rotating log file. With an empty
// File, logs go to stderr.
type LogOptions struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// LoadOptions reads ServerOptions from the given config file (any
// format viper understands), with SWERVE_* environment variables
// taking precedence over file values.
func LoadOptions(path string) (ServerOptions, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("swerve")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return ServerOptions{}, serr.Wrap(err, "could not read config "+path)
	}

	var opts ServerOptions
	if err := v.Unmarshal(&opts); err != nil {
		return ServerOptions{}, serr.Wrap(err, "could not unmarshal config "+path)
	}
	return opts, nil
}
