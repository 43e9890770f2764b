package cli

import (
	"fmt"
	"path/filepath"

	"github.com/Elias2660/bee-analysis/internal/align"
	"github.com/Elias2660/bee-analysis/internal/counts"
	"github.com/Elias2660/bee-analysis/internal/dataset"
	"github.com/Elias2660/bee-analysis/internal/scan"
	"github.com/Elias2660/bee-analysis/internal/timeline"
	"github.com/spf13/cobra"
)

var labelCmd = &cobra.Command{
	Use:   "label [data_dir]",
	Short: "Align logged events to video frame ranges and write dataset.csv",
	Long: `Align logged behavior events to per-segment frame ranges and write the
label table to dataset.csv.

The data directory must contain the video segments, the per-class event
logs and counts.csv (produced by the count command). Each event is mapped
to the segment running when it started; events outlasting a segment are
split across the following segments.

Examples:
  beelabel label ./data --fps 3
  beelabel label ./data --fps 3 -o /tmp/dataset.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLabel,
}

func init() {
	rootCmd.AddCommand(labelCmd)

	labelCmd.Flags().
		IntP("fps", "r", 0, "Video frame rate; required since the streams carry no metadata (default from config)")
}

func runLabel(cmd *cobra.Command, args []string) error {
	dir := dataDir(args)

	fps, _ := cmd.Flags().GetInt("fps")
	if fps <= 0 {
		fps = cfg.FrameRate
	}
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = filepath.Join(dir, cfg.DatasetFile)
	}

	logger.Infow("Building label table",
		"dir", dir,
		"fps", fps,
		"output", outputPath,
	)

	table, err := counts.Load(filepath.Join(dir, cfg.CountsFile))
	if err != nil {
		return err
	}

	segmentFiles, err := scan.DiscoverSegments(dir, cfg.VideoExt)
	if err != nil {
		return err
	}

	frames := make(map[string]int, len(segmentFiles))
	for _, f := range segmentFiles {
		if n, ok := table.Frames(f.Filename); ok {
			frames[f.Filename] = n
		}
	}

	segments, err := timeline.BuildSegmentTimeline(segmentFiles, frames, fps)
	if err != nil {
		return err
	}

	logger.Infow("Segment timeline built",
		"segments", segments.Len(),
		"recording_end", segments.Last().EndTime,
	)

	records, err := scan.ReadEventLogs(dir, cfg.EventLogs)
	if err != nil {
		return err
	}

	events, err := timeline.BuildEventTimeline(records, segments)
	if err != nil {
		return err
	}

	logger.Infow("Event timeline built",
		"events", events.Len(),
	)

	labels, err := align.AlignAll(events, segments, fps)
	if err != nil {
		return err
	}

	if err := dataset.Write(outputPath, labels); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Label table written: %s\n", absOutput)
	fmt.Printf("  Events: %d\n", events.Len())
	fmt.Printf("  Labels: %d\n", len(labels))

	return nil
}
