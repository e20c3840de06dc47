package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/adapters/git"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent completed sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionHist == nil {
			return fmt.Errorf("session history is unavailable")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sessions, err := sessionHist.Recent(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if jsonOutput {
			data, err := json.MarshalIndent(sessions, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal sessions: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		gitStyle := lipgloss.NewStyle().Faint(true)
		for _, s := range sessions {
			line := fmt.Sprintf("%s  %-11s %4.0fm  %s",
				s.CompletedAt.Local().Format("2006-01-02 15:04"),
				s.Type.Label(),
				s.Duration.Minutes(),
				s.TaskTitle)
			if s.GitBranch != "" {
				line += gitStyle.Render(fmt.Sprintf("  %s %s (%s)", appConfig.Theme.IconGit, s.GitBranch, git.ShortCommit(s.GitCommit)))
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of sessions to show")
}
