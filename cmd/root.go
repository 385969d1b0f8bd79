package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/promptline/internal/app"
	"github.com/zjrosen/promptline/internal/config"
	"github.com/zjrosen/promptline/internal/history"
	"github.com/zjrosen/promptline/internal/infrastructure/sqlite"
	"github.com/zjrosen/promptline/internal/log"
	"github.com/zjrosen/promptline/internal/tracing"
)

func init() {
	// Query the terminal background before bubbletea owns stdin, otherwise
	// the OSC 11 reply can show up as typed text in the prompt.
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	cfg       config.Config
	debugFlag bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:     "promptline",
	Short:   "An interactive prompt with persistent history",
	Long:    `A terminal prompt with readline-style editing, shared SQLite history and a markdown transcript of everything submitted.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/promptline/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also PROMPTLINE_DEBUG)")
	rootCmd.PersistentFlags().String("history", "",
		"history database path")
	rootCmd.Flags().BoolP("multiline", "m", false,
		"alt+enter inserts a newline")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false,
		"disable colors")

	_ = viper.BindPFlag("history.path", rootCmd.PersistentFlags().Lookup("history"))
	_ = viper.BindPFlag("prompt.multiline", rootCmd.Flags().Lookup("multiline"))
}

func initConfig() {
	setDefaults(config.Defaults())

	viper.SetEnvPrefix("PROMPTLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .promptline/config.yaml (current directory)
		// 2. ~/.config/promptline/config.yaml (user config)
		if _, err := os.Stat(".promptline/config.yaml"); err == nil {
			viper.SetConfigFile(".promptline/config.yaml")
		} else {
			viper.AddConfigPath(config.DefaultDir())
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			defaultPath := filepath.Join(config.DefaultDir(), "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// Without a writable config dir the defaults still apply.
		}
	}

	cfg = config.Config{}
	_ = viper.Unmarshal(&cfg)
	if cfg.Tracing.Enabled && cfg.Tracing.FilePath == "" {
		cfg.Tracing.FilePath = config.DefaultTracesFilePath()
	}
}

func setDefaults(d config.Config) {
	viper.SetDefault("prompt.multiline", d.Prompt.Multiline)
	viper.SetDefault("prompt.symbol", d.Prompt.Symbol)
	viper.SetDefault("prompt.placeholder", d.Prompt.Placeholder)
	viper.SetDefault("history.path", d.History.Path)
	viper.SetDefault("history.limit", d.History.Limit)
	viper.SetDefault("history.share", d.History.Share)
	viper.SetDefault("history.debounce", d.History.Debounce)
	viper.SetDefault("ui.markdown", d.UI.Markdown)
	viper.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	viper.SetDefault("ui.width", d.UI.Width)
	viper.SetDefault("tracing.enabled", d.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", d.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", d.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// initLogging enables file logging for --debug or PROMPTLINE_DEBUG.
// The returned cleanup is never nil.
func initLogging(prefix string) (func(), error) {
	if !debugFlag && os.Getenv("PROMPTLINE_DEBUG") == "" {
		return func() {}, nil
	}
	logPath := os.Getenv("PROMPTLINE_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "Logging enabled", "path", logPath, "version", version)
	return cleanup, nil
}

// historySession bundles what the prompt needs to recall history.
type historySession struct {
	db    *sqlite.DB
	repo  *sqlite.HistoryRepository
	store history.Store
}

func (h *historySession) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// openHistory opens the SQLite store, or an in-memory one when no path is
// configured.
func openHistory(hc config.HistoryConfig, sessionID string) (*historySession, error) {
	if hc.Path == "" {
		log.Info(log.CatHistory, "History is in memory only")
		return &historySession{store: history.NewMemoryStore(hc.Limit)}, nil
	}
	db, err := sqlite.NewDB(hc.Path)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	repo, err := db.HistoryRepository(sessionID, hc.Limit)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading history: %w", err)
	}
	log.Info(log.CatHistory, "History opened", "path", hc.Path, "session", repo.SessionID(), "entries", len(repo.Entries()))
	return &historySession{db: db, repo: repo, store: repo}, nil
}

func runApp(_ *cobra.Command, _ []string) error {
	cleanup, err := initLogging("promptline")
	if err != nil {
		return err
	}
	defer cleanup()

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = provider.Shutdown(ctx)
	}()

	sessionID := uuid.NewString()
	hist, err := openHistory(cfg.History, sessionID)
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	opts := app.Options{
		Config:    cfg,
		History:   history.NewNavigator(hist.store),
		Tracer:    provider.Tracer(),
		SessionID: sessionID,
		Debug:     debugFlag,
	}
	if hist.repo != nil {
		opts.Store = hist.repo
		if cfg.History.Share {
			opts.WatchPath = hist.db.Path()
		}
	}

	zone.NewGlobal()
	model := app.NewWithConfig(opts)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
