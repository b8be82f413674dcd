package config

import (
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Options are the command line flags shared by the server binaries.
// Unset pointer fields leave the configuration untouched.
type Options struct {
	Config            string  `short:"c" long:"config" env:"SERVE_CONFIG" description:"TOML configuration file"`
	Addr              *string `short:"a" long:"addr" env:"SERVE_ADDR" description:"Bind address (empty for all interfaces)"`
	Port              *int    `short:"p" long:"port" env:"SERVE_PORT" description:"TCP port"`
	Root              *string `short:"r" long:"root" env:"SERVE_ROOT" description:"Directory to serve"`
	DefaultDocument   *string `short:"d" long:"default-document" env:"SERVE_DEFAULT_DOCUMENT" description:"File served for /"`
	NoDefaultDocument bool    `long:"no-default-document" description:"Resolve / literally"`
	LogLevel          *string `long:"log-level" env:"SERVE_LOG_LEVEL" description:"debug, info, warn or error"`
	LogFormat         *string `long:"log-format" env:"SERVE_LOG_FORMAT" description:"json or text"`
	NoAccessLog       bool    `long:"no-access-log" description:"Disable per-request logging"`
}

// IsHelp reports whether err is the result of -h/--help.
func IsHelp(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}

// Parse builds a Config from base, the optional --config file, environment
// variables and args, in that order of precedence.
func Parse(name string, args []string, base Config) (Config, error) {
	var opts Options

	parser := flags.NewNamedParser(name, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.AddGroup("Server Options", "", &opts); err != nil {
		return Config{}, err
	}

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return Config{}, err
	}
	if len(rest) > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", rest)
	}

	cfg := base
	if opts.Config != "" {
		if cfg, err = Load(opts.Config, base); err != nil {
			return Config{}, err
		}
	}

	opts.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (o Options) apply(cfg *Config) {
	if o.Addr != nil {
		cfg.Server.Addr = *o.Addr
	}
	if o.Port != nil {
		cfg.Server.Port = *o.Port
	}
	if o.Root != nil {
		cfg.Server.Root = *o.Root
	}
	if o.DefaultDocument != nil {
		cfg.Server.DefaultDocument = *o.DefaultDocument
	}
	if o.NoDefaultDocument {
		cfg.Server.DefaultDocument = ""
	}
	if o.LogLevel != nil {
		cfg.Log.Level = *o.LogLevel
	}
	if o.LogFormat != nil {
		cfg.Log.Format = *o.LogFormat
	}
	if o.NoAccessLog {
		cfg.Server.AccessLog = false
	}
}
