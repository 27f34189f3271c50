package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Ingest documents into the library",
	Long:  `Decodes, normalizes and segments the given files, then stores them in the library.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input formats",
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(formatsCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	var failed int

	for _, path := range args {
		doc, err := ingestService.IngestFile(ctx, path)
		if err != nil {
			cmd.PrintErrf("%s: %v\n", path, err)
			failed++
			continue
		}

		cmd.Printf("Ingested %s\n", path)
		cmd.Printf("  ID:       %s\n", doc.ID)
		cmd.Printf("  Title:    %s\n", doc.Title)
		cmd.Printf("  Format:   %s\n", doc.Format)
		cmd.Printf("  Segments: %d\n", doc.SegmentCount)
		if len(doc.Outline) > 0 {
			cmd.Printf("  Outline:  %d entries\n", len(doc.Outline))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

func runFormats(cmd *cobra.Command, _ []string) error {
	if decoderRegistry == nil {
		return errors.New("decoder registry not configured")
	}

	cmd.Printf("Supported formats: %s\n", strings.Join(decoderRegistry.SupportedFormats(), ", "))
	return nil
}
