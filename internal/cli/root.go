package cli

import (
	"github.com/Elias2660/bee-analysis/internal/config"
	"github.com/Elias2660/bee-analysis/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	cfgPath string
	logger  *logging.Logger
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "beelabel",
	Short: "Build per-frame training labels from behavior logs and video segments",
	Long: `Beelabel turns a directory of contiguous fixed-rate video segments and
per-class behavior logs into a per-frame label table for training
video classifiers.

It has two steps, usually run in order:

  count   run ffprobe over the video files in parallel and write counts.csv
  label   align logged events to segment frame ranges and write dataset.csv

The video streams carry no timestamps or metadata, so segment start times
come from the filenames and the frame rate must be given explicitly.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)

		if cfgPath == "" {
			cfg = config.Default()
			return nil
		}
		var err error
		cfg, err = config.Load(cfgPath)
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVarP(&cfgPath, "config", "c", "", "Path to a TOML config file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}

// dataDir resolves the optional positional directory argument.
func dataDir(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
