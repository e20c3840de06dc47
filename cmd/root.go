// Package cmd provides the CLI commands for the pomo application.
package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/adapters/git"
	"github.com/xvierd/pomo/internal/adapters/history"
	"github.com/xvierd/pomo/internal/adapters/notification"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/store"
	"github.com/xvierd/pomo/internal/tui"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	dataDir    string
	jsonOutput bool

	// Global dependencies
	appConfig    *config.Config
	taskStore    *store.TaskStore
	statsLog     *store.StatsLog
	sessionHist  ports.History
	notifier     *notification.Notifier
	gitDetector  ports.GitDetector
	loadWarnings []string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "pomo - a terminal pomodoro timer with task tracking",
	Long: `pomo is a terminal pomodoro timer that tracks tasks and daily
statistics, with optional git context on session history.

Run "pomo" with no arguments to open the interactive timer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeStores()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupStores()
	},
	RunE: runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Path to the data directory (default: ~/.pomodoro)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
}

// initializeStores loads configuration and opens the data files. Load
// failures of individual data files are non-fatal: the store falls back
// to empty state and the problem is surfaced as a warning.
func initializeStores() error {
	var err error
	appConfig, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		appConfig = config.DefaultConfig()
		loadWarnings = append(loadWarnings, fmt.Sprintf("config: %v", err))
	}

	if dataDir != "" {
		appConfig.Storage.DataDir = dataDir
	}
	if err := os.MkdirAll(appConfig.Storage.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	notifier = notification.New(&appConfig.Notifications)
	gitDetector = git.NewDetector()

	clock := domain.SystemClock()

	taskStore, err = store.OpenTasks(config.GetTasksPath(appConfig), clock)
	if err != nil {
		loadWarnings = append(loadWarnings, fmt.Sprintf("tasks: %v", err))
	}
	statsLog, err = store.OpenStats(config.GetStatsPath(appConfig), clock)
	if err != nil {
		loadWarnings = append(loadWarnings, fmt.Sprintf("stats: %v", err))
	}

	sessionHist, err = history.New(config.GetHistoryDBPath(appConfig))
	if err != nil {
		// History is reporting-only; the timer works without it.
		sessionHist = nil
		loadWarnings = append(loadWarnings, fmt.Sprintf("history: %v", err))
	}

	return nil
}

// cleanupStores closes all resources.
func cleanupStores() error {
	if sessionHist != nil {
		return sessionHist.Close()
	}
	return nil
}

// runTimer launches the interactive fullscreen timer.
func runTimer(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("the interactive timer needs a terminal; use the subcommands for scripting")
	}

	var gitInfo *ports.GitInfo
	if gitDetector.IsAvailable() {
		workingDir, _ := os.Getwd()
		gitInfo, _ = gitDetector.Detect(context.Background(), workingDir)
	}

	engine := domain.NewEngine(domain.SystemClock(), appConfig.Durations())

	model := tui.NewModel(tui.Options{
		Engine:   engine,
		Tasks:    taskStore,
		Stats:    statsLog,
		Notifier: notifier,
		History:  sessionHist,
		Git:      gitInfo,
		Theme:    &appConfig.Theme,
		Warnings: loadWarnings,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("timer error: %w", err)
	}

	return nil
}
