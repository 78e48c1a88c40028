package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/WillyV3/todoboard/internal/board"
	"github.com/WillyV3/todoboard/internal/config"
	"github.com/WillyV3/todoboard/internal/logging"
	"github.com/WillyV3/todoboard/internal/tui"
)

type App struct {
	ConfigPath string
	StorePath  string
	Driver     string

	cfg   *config.Config
	log   *zap.Logger
	store board.Store
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "todoboard",
		Short:        "Terminal task board",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  todoboard

  # Add a task without opening the board
  todoboard add "Buy milk" --category todo --image ./receipt.png
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := board.LoadOrNew(app.store)
			if err != nil {
				return err
			}
			app.log.Info("board loaded", zap.Int("tasks", len(b.AllTasks())))
			return tui.Run(tui.Options{
				Board:   b,
				Store:   app.store,
				Logger:  app.log,
				Compose: app.cfg.Compose,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "config file (default ~/.config/todoboard/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.StorePath, "store", "", "board file (overrides store.path)")
	cmd.PersistentFlags().StringVar(&app.Driver, "driver", "", "store driver: json|sqlite (overrides store.driver)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if app.log != nil {
			_ = app.log.Sync()
		}
	}

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newSeedCmd(app))

	return cmd
}

func (a *App) setup() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return err
	}
	if s := strings.TrimSpace(a.StorePath); s != "" {
		cfg.Store.Path = s
	}
	if d := strings.TrimSpace(a.Driver); d != "" {
		cfg.Store.Driver = d
	}
	if cfg.Store.Path == "" {
		p, err := board.DefaultPath(cfg.Store.Driver)
		if err != nil {
			return err
		}
		cfg.Store.Path = p
	}
	a.cfg = cfg

	log, err := logging.New(logging.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.Logger.File,
	})
	if err != nil {
		return err
	}
	a.log = log

	store, err := board.OpenStore(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
