// Command celldemo is an interactive tour of the cellui widgets: click
// counters, a scrolling list, a floating popup and live renderer stats.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kungfusheep/cellui"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type flags struct {
	config   string
	fps      int
	logFile  string
	noMouse  bool
	dumpTree string
	debug    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "celldemo",
		Short:         "Interactive demo of the cellui runtime",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "TOML config file")
	cmd.Flags().IntVar(&f.fps, "fps", 0, "fixed frame rate, 0 draws on input only")
	cmd.Flags().StringVar(&f.logFile, "log", "", "write logs to this file")
	cmd.Flags().BoolVar(&f.noMouse, "no-mouse", false, "do not capture the mouse")
	cmd.Flags().StringVar(&f.dumpTree, "dump-tree", "", "write the final widget tree as YAML to this file")
	cmd.Flags().BoolVarP(&f.debug, "debug", "d", false, "log every frame (also CELLUI_DEBUG)")
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, f flags) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) || !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("celldemo needs an interactive terminal")
	}

	cfg, err := cellui.LoadConfig(f.config)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		cfg = cfg.WithFPS(f.fps)
	}
	if f.noMouse {
		cfg = cfg.WithMouseCapture(false)
	}
	cfg = cfg.WithTitle("celldemo")

	logger, closeLog, err := newLogger(f.logFile, f.debug || os.Getenv("CELLUI_DEBUG") != "")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats := &cellui.FrameStats{}
	d := &demo{stats: stats}
	term, err := cellui.NewTerminal(os.Stdin, os.Stdout, cfg,
		cellui.WithLogger(logger),
		cellui.WithRendererWrap(func(r cellui.Renderer) cellui.Renderer {
			return cellui.NewMetricsRenderer(stats, r)
		}),
	)
	if err != nil {
		return err
	}

	err = term.Run(ctx, func(t *cellui.Term) {
		d.build(t)
		d.last = t
	})
	if err != nil {
		logger.Error("demo stopped", "err", err)
		return err
	}

	if f.dumpTree != "" && d.last != nil {
		return dumpTree(f.dumpTree, d.last)
	}
	return nil
}

func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := tint.NewHandler(file, &tint.Options{
		Level:   level,
		NoColor: !isatty.IsTerminal(file.Fd()),
	})
	return slog.New(handler), func() { file.Close() }, nil
}

func dumpTree(path string, t *cellui.Term) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	return t.DumpTree(file)
}
