package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"labelterm/internal/action"
	"labelterm/internal/history"
	"labelterm/internal/remote"
	"labelterm/internal/tool"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "labelterm:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	config := loadConfig()
	var debug bool

	cmd := &cobra.Command{
		Use:           "labelterm [project]",
		Short:         "annotate cell segmentation labels in the terminal",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				config.Project = args[0]
			}
			if config.Project == "" {
				return errors.New("a project id is required")
			}
			return run(cmd.Context(), config, debug)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&config.Server, "server", config.Server, "label service base URL")
	flags.StringVar(&config.Project, "project", config.Project, "project id to open")
	flags.IntVar(&config.BrushSize, "brush-size", config.BrushSize, "initial brush size")
	flags.IntVar(&config.DragThreshold, "drag-threshold", config.DragThreshold, "image pixels before a press becomes a drag")
	flags.DurationVar(&config.Timeout, "timeout", config.Timeout, "timeout for label service requests")
	flags.StringVar(&config.ExportDir, "export-dir", config.ExportDir, "directory for exported files")
	flags.StringVar(&config.LogFile, "log-file", config.LogFile, "write logs to this file")
	flags.BoolVar(&debug, "debug", false, "log at debug level")
	return cmd
}

func run(ctx context.Context, config *Config, debug bool) error {
	logger, closeLog, err := newLogger(config.LogFile, debug)
	if err != nil {
		return err
	}
	defer closeLog()

	client := remote.NewClient(config.Server, config.Timeout, remote.WithLogger(logger))

	loadCtx, cancel := context.WithTimeout(ctx, max(config.Timeout, time.Second)*2)
	project, err := client.Project(loadCtx, config.Project)
	cancel()
	if err != nil {
		return fmt.Errorf("load project %s: %w", config.Project, err)
	}
	logger.Info("project loaded",
		slog.String("project", config.Project),
		slog.Int("width", project.Width),
		slog.Int("height", project.Height),
		slog.Int("frames", project.NumFrames))

	env := &action.Env{
		Model:   project.Model(),
		Gateway: client,
		Session: config.Project,
		Timeout: config.Timeout,
	}

	p := tea.NewProgram(
		newModel(config, env, logger),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}

// newLogger logs to path when set; a terminal UI owns stdout and stderr.
func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := tea.LogToFile(path, "labelterm")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, func() { f.Close() }, nil
}

func newModel(config *Config, env *action.Env, logger *slog.Logger) model {
	if logger == nil {
		logger = slog.Default()
	}
	tools := tool.New(env,
		tool.WithDragThreshold(config.DragThreshold),
		tool.WithBrushSize(config.BrushSize),
		tool.WithLogger(logger),
	)
	return model{
		state:   env.Model,
		env:     env,
		history: history.New(logger),
		tools:   tools,
		config:  config,
		keys:    defaultKeyMap(),
		help:    help.New(),
		logger:  logger.With(slog.String("component", "ui")),
		mode:    ModeNormal,
	}
}
