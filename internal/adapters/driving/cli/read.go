package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/readerelf/readerelf/internal/core/domain"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Produce text views for reading aloud",
	Long:  `Print document segments, context windows and the speech feed handed to a TTS layer.`,
}

var readSegmentsCmd = &cobra.Command{
	Use:   "segments [doc-id]",
	Short: "Print all segments in order",
	Args:  cobra.ExactArgs(1),
	RunE:  runReadSegments,
}

var readContextCmd = &cobra.Command{
	Use:   "context [doc-id] [segment-index]",
	Short: "Print the segments around one segment",
	Args:  cobra.ExactArgs(2),
	RunE:  runReadContext,
}

var readFeedCmd = &cobra.Command{
	Use:   "feed [doc-id]",
	Short: "Print the speech feed",
	Args:  cobra.ExactArgs(1),
	RunE:  runReadFeed,
}

// Flags for the read commands.
var (
	contextRadius int
	feedResume    bool
)

func init() {
	readContextCmd.Flags().IntVarP(&contextRadius, "radius", "r", 0, "Segments on each side (default 2)")
	readFeedCmd.Flags().BoolVar(&feedResume, "resume", false, "Start at the stored reading position")

	readCmd.AddCommand(readSegmentsCmd)
	readCmd.AddCommand(readContextCmd)
	readCmd.AddCommand(readFeedCmd)
	rootCmd.AddCommand(readCmd)
}

func runReadSegments(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	segments, err := libraryService.Segments(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get segments: %w", err)
	}

	for _, seg := range segments {
		cmd.Printf("[%d] %s\n", seg.Index, seg.Text)
	}
	return nil
}

func runReadContext(cmd *cobra.Command, args []string) error {
	if readingService == nil {
		return errors.New("reading service not configured")
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid segment index %q", args[1])
	}

	segments, err := readingService.Context(context.Background(), args[0], index, contextRadius)
	if err != nil {
		return fmt.Errorf("failed to get context: %w", err)
	}

	for _, seg := range segments {
		marker := " "
		if seg.Index == index {
			marker = ">"
		}
		cmd.Printf("%s [%d] %s\n", marker, seg.Index, seg.Text)
	}
	return nil
}

func runReadFeed(cmd *cobra.Command, args []string) error {
	if readingService == nil {
		return errors.New("reading service not configured")
	}

	feed, err := readingService.SpeechFeed(context.Background(), args[0], feedResume)
	if err != nil {
		return fmt.Errorf("failed to build speech feed: %w", err)
	}

	for _, item := range feed {
		if item.Prosody == domain.ProsodyHeading {
			cmd.Printf("# %s\n", item.Text)
			continue
		}
		cmd.Println(item.Text)
	}
	return nil
}
