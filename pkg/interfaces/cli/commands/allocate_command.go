package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/patchwork-labs/patchplan/pkg/bom"
	"github.com/patchwork-labs/patchplan/pkg/cabling"
	"github.com/patchwork-labs/patchplan/pkg/export"
	"github.com/patchwork-labs/patchplan/pkg/infrastructure/project"
)

// Config holds configuration for the allocate command.
type Config struct {
	InputFile  string
	OutputDir  string
	Format     string
	ProjectID  string
	RevisionID string
	Verbose    bool
	Help       bool
}

// AllocateCommand loads a project document, runs the allocator and
// emits the result in the requested format.
type AllocateCommand struct {
	config Config
}

// NewAllocateCommand creates an allocate command with the given
// configuration.
func NewAllocateCommand(config Config) *AllocateCommand {
	return &AllocateCommand{config: config}
}

// Execute runs the allocate command.
func (c *AllocateCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.InputFile == "" {
		return fmt.Errorf("must specify -input project file")
	}

	loader := project.NewLoader()
	doc, err := loader.Load(c.config.InputFile)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("Loaded project %q: %d racks, %d demands\n",
			doc.Info.Name, len(doc.Racks), len(doc.Demands))
	}

	engine := cabling.NewEngine()
	result, err := engine.Allocate(ctx, doc)
	if err != nil {
		return fmt.Errorf("allocation failed: %w", err)
	}

	projectID := c.config.ProjectID
	if projectID == "" {
		projectID = result.Project.Info.Name
	}
	// Revision ids label exports only; the result document itself stays
	// a pure function of the input.
	revisionID := c.config.RevisionID
	if revisionID == "" {
		revisionID = uuid.NewString()
	}

	switch c.config.Format {
	case "", "text":
		c.printReport(result)
	case "json":
		if err := export.ResultJSON(os.Stdout, result); err != nil {
			return err
		}
	case "csv":
		if c.config.OutputDir == "" {
			return fmt.Errorf("csv format requires -output directory")
		}
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}

	if c.config.OutputDir != "" {
		if err := export.WriteAll(c.config.OutputDir, result, projectID, revisionID); err != nil {
			return err
		}
		if c.config.Verbose {
			fmt.Printf("Wrote sessions.csv, bom.csv, result.json to %s\n", c.config.OutputDir)
		}
	}

	if !result.Complete() {
		return fmt.Errorf("allocation incomplete: %d errors recorded", len(result.Errors))
	}
	return nil
}

// printReport writes the human-readable allocation summary.
func (c *AllocateCommand) printReport(result *cabling.Result) {
	fmt.Printf("Project:    %s\n", result.Project.Info.Name)
	fmt.Printf("Input hash: %s\n\n", result.InputHash)

	m := result.Metrics
	fmt.Println("SUMMARY")
	fmt.Printf("  Racks:    %d\n", m.RackCount)
	fmt.Printf("  Panels:   %d\n", m.PanelCount)
	fmt.Printf("  Modules:  %d\n", m.ModuleCount)
	fmt.Printf("  Cables:   %d\n", m.CableCount)
	fmt.Printf("  Sessions: %d\n\n", m.SessionCount)

	if len(result.PairDetails) > 0 {
		fmt.Println("PAIR DETAILS")
		for _, d := range result.PairDetails {
			fmt.Printf("  %s <-> %s  %-8s demand=%-4d chunks=%-3d slots=%d/%d sessions=%d\n",
				d.RackA, d.RackB, d.Category, d.Demand, d.Chunks, d.SlotsA, d.SlotsB, d.Sessions)
		}
		fmt.Println()
	}

	lines := bom.Build(result)
	if len(lines) > 0 {
		fmt.Println("BILL OF MATERIALS")
		for _, line := range lines {
			fmt.Printf("  %-8s %-55s x%d\n", line.ItemType, line.Description, line.Quantity)
		}
		estimate := bom.EstimateCost(lines, bom.DefaultPriceBook())
		fmt.Printf("  Estimated material cost: %s\n", estimate.Total.StringFixed(2))
		for _, key := range estimate.Unpriced {
			fmt.Printf("  (no list price for %s)\n", key)
		}
		fmt.Println()
	}

	for _, warning := range result.Warnings {
		fmt.Printf("WARNING [%s] %s\n", warning.Kind, warning.Message)
	}
	for _, allocErr := range result.Errors {
		fmt.Printf("ERROR [%s] %s\n", allocErr.Kind, allocErr.Message)
	}
}

// showHelp displays the help message.
func (c *AllocateCommand) showHelp() {
	fmt.Print(`patchplan - deterministic rack-to-rack patch-cabling allocator

USAGE:
    patchplan -input project.yaml [options]
    patchplan -diff-old old.json -diff-new new.json

OPTIONS:
    -input <file>       Project YAML document
    -output <dir>       Write sessions.csv, bom.csv and result.json here
    -format <fmt>       Output format: text, json, csv (default: text)
    -project-id <id>    Project id stamped into sessions.csv (default: project name)
    -revision <id>      Revision id stamped into sessions.csv (default: generated)
    -diff-old <file>    Previous result.json for diff mode
    -diff-new <file>    Current result.json for diff mode
    -verbose            Enable verbose output
    -help               Show this help message

PROJECT DOCUMENT:
    version: 1
    project: {name: dc-row-3}
    racks:
      - {id: R01, name: "Row 3 Rack 1"}
      - {id: R02, name: "Row 3 Rack 2"}
    demands:
      - {id: D001, src: R01, dst: R02, endpoint_type: mpo12, count: 14}
`)
}
