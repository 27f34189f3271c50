package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/readerelf/readerelf/internal/core/domain"
)

var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Manage reading positions",
	Long:  `Get, set or reset the per-document reading cursor.`,
}

var positionGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show the stored reading position",
	Args:  cobra.ExactArgs(1),
	RunE:  runPositionGet,
}

var positionSetCmd = &cobra.Command{
	Use:   "set [doc-id] [segment-index]",
	Short: "Record the segment to resume from",
	Args:  cobra.ExactArgs(2),
	RunE:  runPositionSet,
}

var positionResetCmd = &cobra.Command{
	Use:   "reset [doc-id]",
	Short: "Reset the reading position to the start",
	Args:  cobra.ExactArgs(1),
	RunE:  runPositionReset,
}

func init() {
	positionCmd.AddCommand(positionGetCmd)
	positionCmd.AddCommand(positionSetCmd)
	positionCmd.AddCommand(positionResetCmd)
	rootCmd.AddCommand(positionCmd)
}

func runPositionGet(cmd *cobra.Command, args []string) error {
	if readingService == nil {
		return errors.New("reading service not configured")
	}

	pos, err := readingService.Position(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No position stored for %s\n", args[0])
			return nil
		}
		return fmt.Errorf("failed to get position: %w", err)
	}

	cmd.Printf("Document %s: segment %d (updated %s)\n",
		pos.DocumentID, pos.SegmentIndex, pos.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runPositionSet(cmd *cobra.Command, args []string) error {
	if readingService == nil {
		return errors.New("reading service not configured")
	}

	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid segment index %q", args[1])
	}

	if err := readingService.MarkPosition(context.Background(), args[0], index); err != nil {
		return fmt.Errorf("failed to set position: %w", err)
	}

	cmd.Printf("Position for %s set to segment %d\n", args[0], index)
	return nil
}

func runPositionReset(cmd *cobra.Command, args []string) error {
	if readingService == nil {
		return errors.New("reading service not configured")
	}

	if err := readingService.ResetPosition(context.Background(), args[0]); err != nil {
		return fmt.Errorf("failed to reset position: %w", err)
	}

	cmd.Printf("Position for %s reset to segment 0\n", args[0])
	return nil
}
