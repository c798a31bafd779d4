package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/patchwork-labs/patchplan/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		inputFile  = flag.String("input", "", "Path to project YAML document")
		outputDir  = flag.String("output", "", "Output directory for sessions.csv, bom.csv, result.json")
		format     = flag.String("format", "text", "Output format: text, json, csv")
		projectID  = flag.String("project-id", "", "Project id stamped into sessions.csv")
		revisionID = flag.String("revision", "", "Revision id stamped into sessions.csv")
		diffOld    = flag.String("diff-old", "", "Previous result.json (enables diff mode)")
		diffNew    = flag.String("diff-new", "", "Current result.json (enables diff mode)")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	ctx := context.Background()

	if *diffOld != "" || *diffNew != "" {
		cmd := commands.NewDiffCommand(commands.DiffConfig{
			OldFile: *diffOld,
			NewFile: *diffNew,
		})
		if err := cmd.Execute(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cmd := commands.NewAllocateCommand(commands.Config{
		InputFile:  *inputFile,
		OutputDir:  *outputDir,
		Format:     *format,
		ProjectID:  *projectID,
		RevisionID: *revisionID,
		Verbose:    *verbose,
		Help:       *help,
	})
	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
