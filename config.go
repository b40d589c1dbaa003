package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	answerLimit     int
	bind            string
	dataDir         string
	port            int
	prefix          string
	profile         bool
	relayPoll       time.Duration
	roomIdleTimeout time.Duration
	roomTTL         time.Duration
	sourceTimeout   time.Duration
	tlsCert         string
	tlsKey          string
	verbose         bool
	version         bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.answerLimit < 1 {
		return fmt.Errorf("invalid answer limit (must be positive): %d", c.answerLimit)
	}
	if c.roomTTL < time.Minute {
		return fmt.Errorf("invalid room TTL (must be at least one minute): %s", c.roomTTL)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("CROSSBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "crossbox",
		Short:         "Shared crossword rooms for streamers, their viewers, and their chat.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.IntVar(&cfg.answerLimit, "answer-limit", 1024, "maximum length of a submitted answer, in bytes (env: CROSSBOX_ANSWER_LIMIT)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: CROSSBOX_BIND)")
	fs.StringVar(&cfg.dataDir, "data-dir", "", "directory in which to persist rooms; empty means in-memory only (env: CROSSBOX_DATA_DIR)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: CROSSBOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: CROSSBOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: CROSSBOX_PROFILE)")
	fs.DurationVar(&cfg.relayPoll, "relay-poll", 10*time.Second, "how often the chat relay rechecks the room list (env: CROSSBOX_RELAY_POLL)")
	fs.DurationVar(&cfg.roomIdleTimeout, "room-idle-timeout", 20*time.Minute, "time before idle room connections are dropped (env: CROSSBOX_ROOM_IDLE_TIMEOUT)")
	fs.DurationVar(&cfg.roomTTL, "room-ttl", 4*time.Hour, "time before untouched rooms expire from the store (env: CROSSBOX_ROOM_TTL)")
	fs.DurationVar(&cfg.sourceTimeout, "source-timeout", 10*time.Second, "timeout for puzzle source requests (env: CROSSBOX_SOURCE_TIMEOUT)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: CROSSBOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: CROSSBOX_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: CROSSBOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: CROSSBOX_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("crossbox v{{.Version}}\n")

	cmd.SilenceUsage = true

	return cmd
}
