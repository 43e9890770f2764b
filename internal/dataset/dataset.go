// Package dataset writes the label table consumed by training-data loaders.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/Elias2660/bee-analysis/internal/align"
)

// Write produces the dataset CSV with one row per label, in the order the
// assembler produced them.
func Write(path string, labels []align.Label) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"filename", "class", "start frame", "end frame"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, label := range labels {
		record := []string{
			label.Filename,
			label.Class,
			strconv.Itoa(label.StartFrame),
			strconv.Itoa(label.EndFrame),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write label for %s: %w", label.Filename, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
