package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/CrestNiraj12/reviewlist/infra/config"
	"github.com/CrestNiraj12/reviewlist/infra/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are shared by every subcommand. Zero values mean "not set on
// the command line"; config and environment values are kept in that case.
type globalFlags struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	DataDir    string
	Source     string
	Limit      int

	cfg *config.Config
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		mv := strings.TrimSpace(moduleVersion)
		if mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		rev := strings.TrimSpace(settings["vcs.revision"])
		if rev != "" {
			if len(rev) > 12 {
				rev = rev[:12]
			}
			c = rev
		}
	}
	if d == "unknown" {
		t := strings.TrimSpace(settings["vcs.time"])
		if t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

func versionString() string {
	v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
	return fmt.Sprintf("%s (commit %s, built %s)", v, c, d)
}

// applyOverrides copies flags that were set onto cfg.
func (f *globalFlags) applyOverrides(cfg *config.Config) {
	if f.LogLevel != "" {
		cfg.Log.Level = f.LogLevel
	}
	if f.LogFile != "" {
		cfg.Log.File = f.LogFile
	}
	if f.DataDir != "" {
		cfg.DataDir = f.DataDir
	}
	if f.Source != "" {
		cfg.Source.Kind = f.Source
	}
	if f.Limit != 0 {
		cfg.Paging.Limit = f.Limit
	}
}

func newRootCmd(flags *globalFlags) *cli.Command {
	var logCloser func()

	root := &cli.Command{
		Name:    "reviewlist",
		Usage:   "Browse reviews in a paginated terminal list",
		Version: versionString(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars(config.EnvPrefix + "CONFIG"),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (default: <data-dir>/reviewlist.log)",
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "directory for logs and local state",
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "source",
				Usage:       "review source (fixture, file, http)",
				Destination: &flags.Source,
			},
			&cli.IntFlag{
				Name:        "limit",
				Usage:       "reviews requested per page",
				Destination: &flags.Limit,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.applyOverrides(cfg)
			if err := cfg.Validate(); err != nil {
				return ctx, fmt.Errorf("invalid config:\n%w", err)
			}
			flags.cfg = cfg

			logger, closer, err := logging.New(cfg.Log.Level, cfg.LogFile(), nil)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			logCloser = closer
			log.Logger = logger
			log.Debug().Str("source", cfg.Source.Kind).Int("limit", cfg.Paging.Limit).Msg("config loaded")

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	run := newRunCmd(flags)
	root.Commands = []*cli.Command{
		run,
		newServeCmd(flags),
		newDumpCmd(flags),
	}

	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'reviewlist --help' for usage", c.Args().First())
		}
		return run.Action(ctx, c)
	}
	return root
}

func main() {
	flags := &globalFlags{}
	if err := newRootCmd(flags).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "reviewlist: %v\n", err)
		os.Exit(1)
	}
}
