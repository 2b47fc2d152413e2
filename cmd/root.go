package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"heic2jpg/internal/codec"
	"heic2jpg/internal/config"
	"heic2jpg/internal/logging"
	"heic2jpg/internal/processor"
	"heic2jpg/internal/tui"
)

var opts = config.DefaultOptions()

var rootCmd = &cobra.Command{
	Use:   "heic2jpg [flags] <input-dir>",
	Short: "heic2jpg - batch convert HEIC/HEIF photos to JPEG",
	Long: "heic2jpg converts every HEIC/HEIF image in a directory to JPEG in parallel,\n" +
		"keeping EXIF metadata (capture time, camera, location) intact.",
	Example: "  heic2jpg ~/Pictures/iPhone -q 85 -w 8 -r\n" +
		"  heic2jpg ./photos --resize 1920x1080 -o ./jpg",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		o := opts
		o.InputDir = args[0]
		cfg, err := config.New(o)
		if err != nil {
			return err
		}

		logger := logging.New(cfg.Verbose)
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		deps := processor.Deps{
			Decoder: codec.HEIFDecoder{},
			Encoder: codec.JPEGEncoder{},
			Logger:  logger,
			Confirm: func(outputRoot string) (bool, error) {
				return confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Output directory %s is not empty. Overwrite existing files and proceed? (y/n): ", outputRoot))
			},
		}

		updates := make(chan processor.ProgressUpdate, 64)
		progressDone := startProgress("heic2jpg", cfg.Verbose, stop, updates)
		summary, err := processor.Run(ctx, cfg, deps, updates)
		close(updates)
		<-progressDone

		out := cmd.OutOrStdout()
		if errors.Is(err, processor.ErrEmptySet) {
			fmt.Fprintf(out, "No HEIC/HEIF files found in %s.\n", cfg.InputDir)
			return nil
		}
		if err != nil {
			if errors.Is(err, processor.ErrDeclined) {
				fmt.Fprintln(out, "Conversion aborted.")
			}
			return err
		}

		fmt.Fprintln(out, tui.RenderSummary(summary.Rows()))
		if report := tui.RenderFailures(summary.Failures, summary.Warnings); report != "" {
			fmt.Fprintln(out, report)
		}
		if summary.Interrupted() > 0 {
			fmt.Fprintln(out, "Interrupted: remaining files were not converted.")
		}
		fmt.Fprintf(out, "Converted files written to: %s\n", summary.OutputRoot)
		return nil
	},
}

// Execute runs the root command and exits non-zero on setup errors.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	f := rootCmd.Flags()
	f.IntVarP(&opts.Quality, "quality", "q", opts.Quality, "JPEG quality (1-100), env "+config.EnvQuality)
	f.IntVarP(&opts.Workers, "workers", "w", opts.Workers, "number of parallel conversions, env "+config.EnvWorkers)
	f.StringVarP(&opts.OutputDir, "output", "o", "", "output directory (default <input>/"+config.DefaultOutputDirName+")")
	f.BoolVarP(&opts.Recursive, "recursive", "r", false, "descend into subdirectories and mirror them in the output")
	f.StringVar(&opts.Resize, "resize", "", "fit images inside WIDTHxHEIGHT, e.g. 1920x1080 (never upscales)")
	f.BoolVarP(&opts.DeleteOriginals, "delete-originals", "d", false, "delete each source file after it converts successfully")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "detailed logging")
	f.BoolVarP(&opts.AssumeYes, "yes", "y", false, "do not ask before writing into a non-empty output directory")
}
