package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gabrielfornes/flowsheet/internal/config"
	"github.com/gabrielfornes/flowsheet/internal/logger"
	"github.com/gabrielfornes/flowsheet/internal/storage"
	"github.com/gabrielfornes/flowsheet/internal/tui"
)

// App holds the persistent flags shared by every command.
type App struct {
	Dir       string
	ConfigDir string
	LogLevel  string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "flowsheet",
		Short:        "Physical therapy flowsheet editor",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the editor
  flowsheet

  # Write the default reference data and config
  flowsheet init

  # Look things up without opening the editor
  flowsheet catalog squat
  flowsheet codes --eval
  flowsheet units 38 15 8
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("FLOWSHEET_DIR", ""), "Workspace directory (default ~/.flowsheet)")
	cmd.PersistentFlags().StringVar(&app.ConfigDir, "config", "", "Directory holding config.yaml (default: the workspace directory)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newCatalogCmd(app))
	cmd.AddCommand(newCodesCmd(app))
	cmd.AddCommand(newUnitsCmd())
	cmd.AddCommand(newExportsCmd(app))

	return cmd
}

// workspace resolves the configuration and the store the command works on.
// An explicit --dir wins over workspace.dir from the config file, which wins
// over ~/.flowsheet.
func (app *App) workspace() (config.Config, *storage.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := config.DefaultDir()
		if err != nil {
			return config.Config{}, nil, fmt.Errorf("could not determine workspace: %w", err)
		}
		dir = d
	}
	configDir := app.ConfigDir
	if configDir == "" {
		configDir = dir
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		return cfg, nil, fmt.Errorf("could not load config: %w", err)
	}
	if app.LogLevel != "" {
		cfg.Log.Level = app.LogLevel
	}
	if app.Dir == "" && cfg.Workspace.Dir != "" {
		dir = cfg.Workspace.Dir
	}
	cfg.Workspace.Dir = dir

	store, err := storage.New(dir)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, store, nil
}

// reference loads the workspace reference data.
func (app *App) reference() (storage.Reference, error) {
	_, store, err := app.workspace()
	if err != nil {
		return storage.Reference{}, err
	}
	return store.LoadReference()
}

func runTUI(app *App) error {
	cfg, store, err := app.workspace()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer log.Sync()

	ref, err := store.LoadReference()
	if err != nil {
		log.Error("reference data", "err", err)
		return err
	}
	log.Info("editor started", "workspace", store.Root, "groups", len(ref.Groups), "catalog", len(ref.Catalog))

	model := tui.NewModel(tui.Options{
		Store:     store,
		Reference: ref,
		Config:    cfg,
		Logger:    log,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("editor crashed", "err", err)
		return fmt.Errorf("could not run editor: %w", err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
