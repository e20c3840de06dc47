package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/store"
)

var statsDate string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show pomodoro statistics",
	Long: `Show completed pomodoros for a day, broken down by task, plus a
bar chart of work sessions over the last seven days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := statsDate
		var day store.DayStats
		if date == "" {
			day = statsLog.Today()
			date = time.Now().Format("2006-01-02")
		} else {
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
			}
			day = statsLog.Day(date)
		}

		if jsonOutput {
			out := map[string]any{
				"date":            date,
				"total_pomodoros": day.TotalPomodoros,
				"tasks":           day.Tasks,
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal stats: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(appConfig.Theme.ColorTitle))
		fmt.Println(titleStyle.Render(fmt.Sprintf("%s Stats for %s", appConfig.Theme.IconStats, date)))
		fmt.Printf("Total pomodoros: %d\n", day.TotalPomodoros)

		if len(day.Tasks) > 0 {
			fmt.Println()
			titles := make([]string, 0, len(day.Tasks))
			for title := range day.Tasks {
				titles = append(titles, title)
			}
			sort.Strings(titles)
			for _, title := range titles {
				fmt.Printf("  %s: %d\n", title, day.Tasks[title])
			}
		}

		if sessionHist != nil {
			if chartView := renderWeekChart(); chartView != "" {
				fmt.Println()
				fmt.Println(titleStyle.Render("Last 7 days"))
				fmt.Println(chartView)
			}
		}
		return nil
	},
}

// renderWeekChart draws a bar chart of work sessions per day for the
// last seven days from the session history. Returns "" when the
// history has no data for the window.
func renderWeekChart() string {
	now := time.Now()
	since := now.AddDate(0, 0, -6)
	since = time.Date(since.Year(), since.Month(), since.Day(), 0, 0, 0, 0, since.Location())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	perDay, err := sessionHist.WorkSessionsPerDay(ctx, since)
	if err != nil || len(perDay) == 0 {
		return ""
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appConfig.Theme.ColorWork))
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(appConfig.Theme.ColorHelp))

	var bars []barchart.BarData
	for d := since; !d.After(now); d = d.AddDate(0, 0, 1) {
		count := perDay[d.Format("2006-01-02")]
		style := barStyle
		if count == 0 {
			style = emptyStyle
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: "pomodoros", Value: float64(count), Style: style},
			},
		})
	}

	chart := barchart.New(60, 10)
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func init() {
	statsCmd.Flags().StringVarP(&statsDate, "date", "d", "", "Show stats for a specific day (YYYY-MM-DD)")
}
