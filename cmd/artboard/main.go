package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"artboard/internal/board"
	"artboard/internal/config"
	"artboard/internal/domain"
	"artboard/internal/eventbus"
	"artboard/internal/ui"
)

type options struct {
	configPath string
	logFile    string
	verbose    bool
	zoom       float64
	view       string
	rulers     bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "artboard",
		Short:        "Drag, resize and rotate elements on a terminal artboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: user config dir)")
	flags.StringVar(&opts.logFile, "log-file", "artboard.log", "log file, empty to disable logging")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.Flags().Float64Var(&opts.zoom, "zoom", 0, "board zoom factor")
	root.Flags().StringVar(&opts.view, "view", "", "view mode: desktop, tablet or mobile")
	root.Flags().BoolVar(&opts.rulers, "rulers", false, "show rulers on start")

	root.AddCommand(newConfigCmd(opts))
	return root
}

func newConfigCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the artboard config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigServiceWithBus(eventbus.NullBus{}, opts.configPath)
			if _, err := os.Stat(svc.Path()); err == nil {
				return fmt.Errorf("config already exists at %s", svc.Path())
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), svc.Path())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Run: func(cmd *cobra.Command, args []string) {
			svc := config.NewConfigServiceWithBus(eventbus.NullBus{}, opts.configPath)
			fmt.Fprintln(cmd.OutOrStdout(), svc.Path())
		},
	})
	return cmd
}

// newLogger creates a logger writing to w at the given level
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func run(cmd *cobra.Command, opts *options) error {
	// Set up logging; the terminal belongs to the UI
	var w io.Writer = io.Discard
	if opts.logFile != "" {
		logFile, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer logFile.Close()
		w = logFile
	}
	level := log.InfoLevel
	if opts.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(w, level)

	bus := eventbus.New(logger)
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(bus, opts.configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("load config %s: %w", configSvc.Path(), err)
	}
	if err := applyFlags(cmd, cfg, opts); err != nil {
		return err
	}
	logger.Info("config loaded", "path", configSvc.Path(), "view", cfg.Board.View, "zoom", cfg.Board.Zoom)

	b := board.New(cfg, bus, logger)
	defer b.Close()

	model := ui.NewModel(b, logger)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(cmd.Context()),
	)
	model.SetProgram(p)

	// Forward bus events to the UI; dropping is fine, the next event
	// carries the current state
	eventChan := make(chan domain.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logger.Warn("event channel full, dropping event", "type", e.Type())
		}
	}
	bus.Subscribe(eventbus.EventGestureEnded, forward)
	bus.Subscribe(eventbus.EventLockChanged, forward)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	if os.Getenv("ARTBOARD_E2E_TEST") == "1" {
		fmt.Fprintln(cmd.OutOrStdout(), "__READY__")
	}

	logger.Info("starting UI")
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && cmd.Context().Err() != nil {
			return cmd.Context().Err()
		}
		return fmt.Errorf("run program: %w", err)
	}
	logger.Info("UI exited normally")
	return nil
}

// applyFlags overrides config values with flags the user set explicitly
func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options) error {
	flags := cmd.Flags()
	if flags.Changed("zoom") {
		cfg.Board.Zoom = opts.zoom
	}
	if flags.Changed("view") {
		cfg.Board.View = domain.ViewMode(opts.view)
	}
	if flags.Changed("rulers") {
		cfg.Snap.ShowRulers = opts.rulers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}
