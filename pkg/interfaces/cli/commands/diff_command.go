package commands

import (
	"context"
	"fmt"

	"github.com/patchwork-labs/patchplan/pkg/cabling"
	"github.com/patchwork-labs/patchplan/pkg/export"
)

// DiffConfig holds configuration for the diff command.
type DiffConfig struct {
	OldFile string
	NewFile string
}

// DiffCommand compares two result documents along the logical and
// physical axes.
type DiffCommand struct {
	config DiffConfig
}

// NewDiffCommand creates a diff command with the given configuration.
func NewDiffCommand(config DiffConfig) *DiffCommand {
	return &DiffCommand{config: config}
}

// Execute runs the diff command.
func (c *DiffCommand) Execute(ctx context.Context) error {
	if c.config.OldFile == "" || c.config.NewFile == "" {
		return fmt.Errorf("diff mode requires both -diff-old and -diff-new")
	}

	oldResult, err := export.ReadResult(c.config.OldFile)
	if err != nil {
		return err
	}
	newResult, err := export.ReadResult(c.config.NewFile)
	if err != nil {
		return err
	}

	logical := cabling.LogicalDiffOf(oldResult, newResult)
	physical := cabling.PhysicalDiffOf(oldResult, newResult)

	fmt.Printf("LOGICAL DIFF (by session id)\n")
	fmt.Printf("  added=%d removed=%d modified=%d\n", len(logical.Added), len(logical.Removed), len(logical.Modified))
	for _, id := range logical.Added {
		fmt.Printf("  + %s\n", id)
	}
	for _, id := range logical.Removed {
		fmt.Printf("  - %s\n", id)
	}
	for _, id := range logical.Modified {
		fmt.Printf("  ~ %s\n", id)
	}

	fmt.Printf("\nPHYSICAL DIFF (by termination tuple)\n")
	fmt.Printf("  added=%d removed=%d collisions=%d\n", len(physical.Added), len(physical.Removed), len(physical.Collisions))
	for _, t := range physical.Added {
		fmt.Printf("  + %s\n", tupleString(t))
	}
	for _, t := range physical.Removed {
		fmt.Printf("  - %s\n", tupleString(t))
	}
	for _, collision := range physical.Collisions {
		fmt.Printf("  ! %s  %s -> %s\n",
			tupleString(collision.Tuple), collision.OldSessionID, collision.NewSessionID)
	}

	if logical.Empty() && physical.Empty() {
		fmt.Println("\nDocuments are identical.")
	}
	return nil
}

func tupleString(t cabling.PhysTuple) string {
	return fmt.Sprintf("%s %s -> %s",
		t.Media,
		cabling.Label(t.SrcRack, t.SrcU, t.SrcSlot, t.SrcPort),
		cabling.Label(t.DstRack, t.DstU, t.DstSlot, t.DstPort))
}
