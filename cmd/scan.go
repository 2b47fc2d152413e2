package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"heic2jpg/internal/codec"
	"heic2jpg/internal/config"
	"heic2jpg/internal/processor"
	"heic2jpg/internal/tui"
)

var scanRecursive bool

var scanCmd = &cobra.Command{
	Use:   "scan <input-dir>",
	Short: "Report the EXIF metadata a conversion would carry over",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New(config.Options{
			InputDir:  args[0],
			Quality:   config.DefaultQuality,
			Workers:   config.EnvInt(config.EnvWorkers, config.DefaultWorkers),
			Recursive: scanRecursive,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		updates := make(chan processor.ProgressUpdate, 64)
		progressDone := startProgress("heic2jpg scan", false, stop, updates)
		reports, err := processor.Scan(ctx, cfg, codec.HEIFDecoder{}, updates)
		close(updates)
		<-progressDone

		out := cmd.OutOrStdout()
		if errors.Is(err, processor.ErrEmptySet) {
			fmt.Fprintf(out, "No HEIC/HEIF files found in %s.\n", cfg.InputDir)
			return nil
		}
		if err != nil {
			return err
		}

		for i, report := range reports {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s\n", scanFileStyle.Render(report.Path))
			if report.Err != nil {
				fmt.Fprintf(out, "  %s %s\n", scanBulletStyle.Render("-"), scanWarnStyle.Render(report.Err.Error()))
				continue
			}
			if len(report.Details) == 0 {
				fmt.Fprintf(out, "  %s %s\n", scanBulletStyle.Render("-"), scanDimStyle.Render("none"))
				continue
			}
			for _, detail := range report.Details {
				fmt.Fprintf(out, "  %s\n", scanCategoryStyle.Render(detail.Category+":"))
				for _, value := range detail.Values {
					fmt.Fprintf(out, "    %s %s\n", scanBulletStyle.Render("-"), scanValueStyle.Render(value))
				}
			}
			for _, insight := range report.Insights {
				fmt.Fprintf(out, "  %s %s\n", scanInsightStyle.Render(insight.Kind+":"), scanValueStyle.Render(insight.Message))
			}
		}
		return nil
	},
}

var (
	scanFileStyle     = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanCategoryStyle = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	scanInsightStyle  = lipgloss.NewStyle().Foreground(tui.ColorSuccess)
	scanValueStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	scanDimStyle      = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanBulletStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanWarnStyle     = lipgloss.NewStyle().Foreground(tui.ColorWarn)
)

func init() {
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false, "descend into subdirectories")
	rootCmd.AddCommand(scanCmd)
}
