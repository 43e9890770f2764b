package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Elias2660/bee-analysis/internal/counts"
	"github.com/Elias2660/bee-analysis/internal/probe"
	"github.com/Elias2660/bee-analysis/internal/scan"
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count [data_dir]",
	Short: "Count decodable frames in every video segment",
	Long: `Count decodable frames in every video segment of the data directory and
write the results to counts.csv.

Raw h264 streams have no frame-count metadata, so ffprobe decodes each
stream's headers end to end. Files are probed in parallel; the whole
directory must succeed for counts.csv to be written.

Examples:
  beelabel count ./data
  beelabel count ./data --jobs 16
  beelabel count ./data -o /tmp/counts.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)

	countCmd.Flags().
		IntP("jobs", "j", 0, "Number of parallel ffprobe workers (default from config)")
}

func runCount(cmd *cobra.Command, args []string) error {
	dir := dataDir(args)
	ctx := context.Background()

	if err := probe.EnsureFFprobe(); err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		jobs = cfg.ProbeJobs
	}
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = filepath.Join(dir, cfg.CountsFile)
	}

	files, err := scan.ListVideos(dir, cfg.VideoExt)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", cfg.VideoExt, dir)
	}

	logger.Infow("Counting frames",
		"dir", dir,
		"files", len(files),
		"jobs", jobs,
	)

	results, err := probe.CountAll(ctx, files, jobs)
	if err != nil {
		return err
	}

	rows := make([]counts.Row, len(results))
	totalFrames := 0
	for i, res := range results {
		rows[i] = counts.Row{Filename: filepath.Base(res.Filename), Frames: res.Frames}
		totalFrames += res.Frames
	}

	if err := counts.Write(outputPath, rows); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Frame counts written: %s\n", absOutput)
	fmt.Printf("  Files:  %d\n", len(rows))
	fmt.Printf("  Frames: %d\n", totalFrames)

	return nil
}
