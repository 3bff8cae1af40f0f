package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/CrestNiraj12/reviewlist/app"
	"github.com/CrestNiraj12/reviewlist/app/layout"
	"github.com/CrestNiraj12/reviewlist/app/paging"
	"github.com/CrestNiraj12/reviewlist/infra/config"
	"github.com/CrestNiraj12/reviewlist/infra/images"
	"github.com/CrestNiraj12/reviewlist/infra/logging"
	"github.com/CrestNiraj12/reviewlist/infra/reviewserver"
	"github.com/CrestNiraj12/reviewlist/infra/reviewsource"
	"github.com/CrestNiraj12/reviewlist/infra/textmetrics"
	"github.com/CrestNiraj12/reviewlist/tui"
	"github.com/CrestNiraj12/reviewlist/tui/reviews"
)

const fallbackWidth = 80

// buildSource returns the review source selected by cfg.
func buildSource(cfg config.SourceConfig) (app.ReviewSource, error) {
	srcLog := logging.Component("source")
	switch cfg.Kind {
	case config.SourceFixture:
		return reviewsource.NewFixtureSource(
			reviewsource.WithLatency(cfg.LatencyMin, cfg.LatencyMax),
			reviewsource.WithLogger(srcLog),
		), nil
	case config.SourceFile:
		return reviewsource.NewFileSource(cfg.Path,
			reviewsource.WithLatency(cfg.LatencyMin, cfg.LatencyMax),
			reviewsource.WithLogger(srcLog),
		), nil
	case config.SourceHTTP:
		return reviewsource.NewHTTPSource(cfg.URL, &http.Client{}, srcLog), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}

func newController(cfg *config.Config) (*paging.Controller, error) {
	src, err := buildSource(cfg.Source)
	if err != nil {
		return nil, err
	}
	return paging.New(src,
		paging.WithLimit(cfg.Paging.Limit),
		paging.WithLogger(logging.Component("paging")),
	), nil
}

func newEngine() *layout.Engine {
	return layout.NewEngine(textmetrics.Cells{}, layout.TerminalGeometry())
}

func newRunCmd(flags *globalFlags) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Open the interactive review list (default)",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := flags.cfg

			ctrl, err := newController(cfg)
			if err != nil {
				return err
			}

			cache, err := images.NewCache(cfg.Images.CacheSize)
			if err != nil {
				return fmt.Errorf("create image cache: %w", err)
			}

			root := tui.NewApp(tui.Deps{
				Controller:   ctrl,
				Images:       images.NewSource(cache, cfg.Images.Timeout, logging.Component("images")),
				Engine:       newEngine(),
				ScreensAhead: cfg.Paging.ScreensAhead,
				Log:          logging.Component("tui"),
			})
			defer root.Close()

			p := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}
}

func newServeCmd(flags *globalFlags) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the review collection as a paginated HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (default: server.addr from config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := flags.cfg
			addr := cfg.Server.Addr
			if v := c.String("addr"); v != "" {
				addr = v
			}

			srcLog := logging.Component("source")
			catalog := reviewsource.NewFixtureSource(reviewsource.WithLogger(srcLog))
			if cfg.Source.Kind == config.SourceFile {
				catalog = reviewsource.NewFileSource(cfg.Source.Path, reviewsource.WithLogger(srcLog))
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(c.Root().Writer, "serving reviews on %s\n", addr)
			return reviewserver.New(catalog, logging.Component("server")).Run(ctx, addr)
		},
	}
}

func newDumpCmd(flags *globalFlags) *cli.Command {
	return &cli.Command{
		Name:  "dump",
		Usage: "Load every page without the TUI and print the rendered rows",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "width",
				Usage: "render width in cells (default: terminal width)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctrl, err := newController(flags.cfg)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			width := c.Int("width")
			if width <= 0 {
				width = terminalWidth(os.Stdout)
			}
			return dumpReviews(ctx, c.Root().Writer, ctrl, newEngine(), width)
		},
	}
}

func terminalWidth(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

// dumpReviews drives ctrl until the collection is exhausted, then writes
// every row at the given width. A failed page stops the loop and its error
// is returned after the rows loaded so far are written.
func dumpReviews(ctx context.Context, w io.Writer, ctrl *paging.Controller, engine *layout.Engine, width int) error {
	var fetchErr error
	for {
		fetch := ctrl.RequestNextPage(ctx)
		if fetch == nil {
			break
		}
		res := fetch()
		ctrl.Apply(res)
		if res.Err != nil {
			fetchErr = fmt.Errorf("load page at offset %d: %w", res.Offset, res.Err)
			break
		}
	}

	st := ctrl.State()
	log.Info().Int("loaded", st.Loaded()).Int("total", st.TotalCount).Msg("dump finished")

	for _, row := range st.Rows() {
		l := row.Layout(engine, float64(width))
		for _, line := range reviews.RenderRow(row, l, reviews.RenderOptions{Width: width}) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return fetchErr
}
