// Package main provides the CLI entrypoint for typego.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typego/internal/config"
	"github.com/verte-zerg/typego/internal/engine"
	"github.com/verte-zerg/typego/internal/generator"
	"github.com/verte-zerg/typego/internal/history"
	"github.com/verte-zerg/typego/internal/logging"
	"github.com/verte-zerg/typego/internal/model"
	"github.com/verte-zerg/typego/internal/phrases"
	"github.com/verte-zerg/typego/internal/prefs"
	"github.com/verte-zerg/typego/internal/server"
	"github.com/verte-zerg/typego/internal/stats"
	"github.com/verte-zerg/typego/internal/store"
	"github.com/verte-zerg/typego/internal/tui"
)

const (
	maxDuration    = 600
	maxPhraseCount = 100
	defaultEnvFile = ".env"
)

var (
	practiceLang       string
	practiceDuration   int
	practicePhrases    int
	practicePhrasesDir string
	practiceServer     string

	serveAddr       string
	servePhrasesDir string
	serveEnvFile    string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typego",
		Short:         "Timed typing-speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLang, "lang", "", "phrase language: en or ua (default: saved locale)")
	rootCmd.Flags().IntVar(&practiceDuration, "duration", engine.DefaultDuration, "session length in seconds")
	rootCmd.Flags().IntVar(&practicePhrases, "phrases", engine.DefaultPhraseCount, "phrases per text")
	rootCmd.Flags().StringVar(&practicePhrasesDir, "phrases-dir", "", "directory with {lang}.json phrase files")
	rootCmd.Flags().StringVar(&practiceServer, "server", "", "phrase server base URL, e.g. http://localhost:4000")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyIntConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration)
	applyIntConfig(cmd, "phrases", &practicePhrases, fileCfg.Practice.PhraseCount)
	applyStringConfig(cmd, "phrases-dir", &practicePhrasesDir, fileCfg.Practice.PhrasesDir)
	applyStringConfig(cmd, "server", &practiceServer, fileCfg.Practice.ServerURL)

	cfg := model.Config{
		Lang:        practiceLang,
		Duration:    practiceDuration,
		PhraseCount: practicePhrases,
		PhrasesDir:  practicePhrasesDir,
		ServerURL:   practiceServer,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logs, err := logging.NewFile(config.DefaultLogPath(), slog.LevelInfo)
	if err != nil {
		logErrf("failed to open log file, logging disabled: %v\n", err)
		logs = logging.Discard()
	}
	defer func() {
		if cerr := logs.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()
	logger := logs.Logger

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	hist := history.New(st)
	if err := hist.Load(ctx); err != nil {
		logger.Warn("failed to load history, starting empty", "error", err)
	}
	theme, err := prefs.LoadTheme(ctx, st)
	if err != nil {
		logger.Warn("failed to load theme", "error", err)
	}
	locale, err := prefs.LoadLocale(ctx, st)
	if err != nil {
		logger.Warn("failed to load locale", "error", err)
	}
	if cfg.Lang != "" {
		locale = prefs.ParseLocale(cfg.Lang)
	}

	eng := engine.New(engine.Options{
		Lang:        string(locale),
		Duration:    cfg.Duration,
		PhraseCount: cfg.PhraseCount,
		Source:      phraseSource(cfg),
		Recorder:    hist,
		Generator:   generator.New(),
		Logger:      logger,
	})
	if err := eng.Reload(ctx); err != nil {
		logger.Warn("failed to load initial text", "error", err)
	}

	m := tui.NewModel(eng, hist, st, theme, locale, logger)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func phraseSource(cfg model.Config) phrases.Source {
	switch {
	case cfg.ServerURL != "":
		return phrases.NewHTTPSource(cfg.ServerURL)
	case cfg.PhrasesDir != "":
		return phrases.Dir(cfg.PhrasesDir)
	default:
		return phrases.Embedded()
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve phrase lists over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&servePhrasesDir, "phrases-dir", "", "directory with {lang}.json phrase files (default: built-in phrases)")
	cmd.Flags().StringVar(&serveEnvFile, "env-file", defaultEnvFile, "dotenv file with TYPEGO_* overrides")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(serveEnvFile); err != nil {
		return err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyStringConfig(cmd, "phrases-dir", &servePhrasesDir, fileCfg.Server.PhrasesDir)
	applyStringConfig(cmd, "addr", &serveAddr, config.LookupEnv(config.EnvAddr))
	applyStringConfig(cmd, "phrases-dir", &servePhrasesDir, config.LookupEnv(config.EnvPhrasesDir))

	cfg := model.ServerConfig{Addr: serveAddr, PhrasesDir: servePhrasesDir}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("--addr must not be empty")
	}

	logger := logging.NewText(cmd.ErrOrStderr(), slog.LevelInfo).Logger
	source := phrases.Embedded()
	if cfg.PhrasesDir != "" {
		source = phrases.Dir(cfg.PhrasesDir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx, cfg.Addr, server.NewHandler(source, logger), logger)
}

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show the ranked leaderboard",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	hist := history.New(st)
	if err := hist.Load(cmd.Context()); err != nil {
		logErrf("failed to load history: %v\n", err)
	}
	return printHistory(cmd.OutOrStdout(), hist, isTerminal(cmd.OutOrStdout()))
}

func printHistory(w io.Writer, hist *history.Store, useColor bool) error {
	if err := stats.RenderLeaderboard(w, hist.Ranked(), useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTrend(w, hist.Entries()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typego configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q                # Phrase language: en or ua
# duration = %d            # Session length in seconds
# phrases = %d             # Phrases per text
# phrases-dir = ""          # Directory with {lang}.json phrase files
# server = ""               # Phrase server base URL

[server]
# addr = %q             # Listen address for "typego serve"
# phrases-dir = ""          # Directory with {lang}.json phrase files
`,
		phrases.LangEN,
		engine.DefaultDuration,
		engine.DefaultPhraseCount,
		server.DefaultAddr,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Duration <= 0 || cfg.Duration > maxDuration {
		return fmt.Errorf("--duration must be between 1 and %d", maxDuration)
	}
	if cfg.PhraseCount <= 0 || cfg.PhraseCount > maxPhraseCount {
		return fmt.Errorf("--phrases must be between 1 and %d", maxPhraseCount)
	}
	if cfg.Lang != "" && cfg.Lang != phrases.LangEN && cfg.Lang != phrases.LangUA {
		return fmt.Errorf("--lang must be %q or %q", phrases.LangEN, phrases.LangUA)
	}
	if cfg.PhrasesDir != "" && cfg.ServerURL != "" {
		return fmt.Errorf("--phrases-dir and --server are mutually exclusive")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
