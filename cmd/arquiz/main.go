// Package main provides the CLI entrypoint for arquiz.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/app"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/config"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/library"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/store"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/tui"
	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/vision"
)

const (
	defaultEngine        = store.EngineSQLite
	defaultTimeout       = 30 * time.Second
	defaultMinConfidence = 0.0
	defaultAddr          = "127.0.0.1:8080"
	dotenvFile           = ".env"
)

var opts model.Config

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arquiz",
		Short:         "Lab safety quiz trainer driven by object recognition",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.StoreEngine, "store", defaultEngine, "storage engine (sqlite or json)")
	flags.StringVar(&opts.StorePath, "data-file", "", "storage file path (default: XDG data dir)")
	flags.StringVar(&opts.ClassifierURL, "classifier-url", "", "image classifier endpoint")
	flags.DurationVar(&opts.ClassifierTimeout, "timeout", defaultTimeout, "classifier request timeout")
	flags.Float64Var(&opts.MinConfidence, "min-confidence", defaultMinConfidence, "drop predictions below this confidence (0-1)")
	flags.StringVar(&opts.StaticLabel, "label", "", "fixed label to detect when no classifier endpoint is set")
	flags.StringVar(&opts.FramePath, "frame", "", "image file or directory used as the camera")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newLibraryCmd())
	rootCmd.AddCommand(newRecentCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	if err := resolveOptions(cmd); err != nil {
		return err
	}
	logPath := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(logPath, "arquiz")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		_ = logFile.Close()
	}()

	lib, closeStore, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeStore()

	ctrl, err := newController(lib)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	m := tui.NewModel(ctrl)
	defer m.Close()
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveOptions layers config file, then environment, under explicit flags.
func resolveOptions(cmd *cobra.Command) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	envCfg, err := config.LoadEnv(dotenvFile)
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	applyStringConfig(cmd, "store", &opts.StoreEngine, fileCfg.Storage.Engine)
	applyStringConfig(cmd, "data-file", &opts.StorePath, fileCfg.Storage.Path)
	applyStringConfig(cmd, "classifier-url", &opts.ClassifierURL, fileCfg.Classifier.Endpoint)
	applyDurationConfig(cmd, "timeout", &opts.ClassifierTimeout, fileCfg.ClassifierTimeout())
	applyFloatConfig(cmd, "min-confidence", &opts.MinConfidence, fileCfg.Classifier.MinConfidence)
	applyStringConfig(cmd, "label", &opts.StaticLabel, fileCfg.Classifier.Label)
	applyStringConfig(cmd, "frame", &opts.FramePath, fileCfg.Camera.Frame)
	applyStringConfig(cmd, "addr", &opts.ServeAddr, fileCfg.Serve.Addr)

	applyStringConfig(cmd, "store", &opts.StoreEngine, envCfg.StoreEngine)
	applyStringConfig(cmd, "data-file", &opts.StorePath, envCfg.StorePath)
	applyStringConfig(cmd, "classifier-url", &opts.ClassifierURL, envCfg.ClassifierURL)
	applyStringConfig(cmd, "addr", &opts.ServeAddr, envCfg.ServeAddr)

	return validateOptions(opts)
}

func validateOptions(o model.Config) error {
	switch strings.ToLower(strings.TrimSpace(o.StoreEngine)) {
	case store.EngineSQLite, store.EngineJSON:
	default:
		return fmt.Errorf("--store must be %q or %q", store.EngineSQLite, store.EngineJSON)
	}
	if o.ClassifierTimeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if o.MinConfidence < 0 || o.MinConfidence > 1 {
		return fmt.Errorf("--min-confidence must be between 0 and 1")
	}
	return nil
}

func openLibrary() (*library.Manager, func(), error) {
	path := opts.StorePath
	if path == "" {
		path = config.DefaultStorePath(opts.StoreEngine)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	kv, err := store.NewByEngine(opts.StoreEngine, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	closeStore := func() {
		if cerr := kv.Close(); cerr != nil {
			logErrf("failed to close store: %v\n", cerr)
		}
	}
	return library.New(store.NewCollections(kv)), closeStore, nil
}

func newVisionModel(o model.Config) (*vision.Model, error) {
	if o.ClassifierURL == "" {
		return vision.NewModel(vision.Ready(vision.StaticClassifier{Label: o.StaticLabel})), nil
	}
	cls, err := vision.NewHTTPClassifier(vision.HTTPConfig{
		Endpoint:      o.ClassifierURL,
		Timeout:       o.ClassifierTimeout,
		MinConfidence: o.MinConfidence,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure classifier: %w", err)
	}
	return vision.NewModel(cls.Loader()), nil
}

func newController(lib *library.Manager) (*app.Controller, error) {
	m, err := newVisionModel(opts)
	if err != nil {
		return nil, err
	}
	return app.New(lib, m, vision.FileCamera{Path: opts.FramePath}), nil
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
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target, value *time.Duration) {
	if value == nil || flagChanged(cmd, name) {
		return
	}
	*target = *value
}

// flagChanged also reports false for flags the command does not define.
func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# arquiz configuration
# Uncomment a value to enable it. Environment variables (%s, %s,
# %s, %s) override these, and CLI flags override both.

[storage]
# engine = %q          # sqlite or json
# path = ""               # Data file (default: XDG data dir)

[classifier]
# endpoint = ""           # Image classifier URL; empty uses the fixed label
# timeout = %q           # Request timeout
# min-confidence = %.1f    # Drop predictions below this confidence (0-1)
# label = ""              # Fixed label when no endpoint is set

[camera]
# frame = ""              # Image file or directory of captured frames

[serve]
# addr = %q
`,
		config.EnvStore,
		config.EnvDataFile,
		config.EnvClassifierURL,
		config.EnvAddr,
		defaultEngine,
		defaultTimeout.String(),
		defaultMinConfidence,
		defaultAddr,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
