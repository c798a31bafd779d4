package main

import (
	"context"
	"fmt"

	"github.com/patchwork-labs/patchplan/pkg/bom"
	"github.com/patchwork-labs/patchplan/pkg/cabling"
)

func main() {
	ctx := context.Background()

	// A three-rack row with mixed media demands
	project := cabling.Project{
		Version: 1,
		Info:    cabling.ProjectInfo{Name: "example-row"},
		Racks: []cabling.Rack{
			{ID: "R01", Name: "Rack 1"},
			{ID: "R02", Name: "Rack 2"},
			{ID: "R03", Name: "Rack 3"},
		},
		Demands: []cabling.Demand{
			{ID: "D001", Src: "R01", Dst: "R02", EndpointType: cabling.EndpointMMFLCDuplex, Count: 13},
			{ID: "D002", Src: "R01", Dst: "R02", EndpointType: cabling.EndpointMPO12, Count: 14},
			{ID: "D003", Src: "R01", Dst: "R03", EndpointType: cabling.EndpointUTPRJ45, Count: 8},
		},
	}

	engine := cabling.NewEngine()
	result, err := engine.Allocate(ctx, project)
	if err != nil {
		fmt.Printf("allocation failed: %v\n", err)
		return
	}

	fmt.Printf("Allocated %q (input hash %s)\n", result.Project.Info.Name, result.InputHash[:12])
	fmt.Printf("  Panels:   %d\n", result.Metrics.PanelCount)
	fmt.Printf("  Modules:  %d\n", result.Metrics.ModuleCount)
	fmt.Printf("  Cables:   %d\n", result.Metrics.CableCount)
	fmt.Printf("  Sessions: %d\n", result.Metrics.SessionCount)
	fmt.Println()

	fmt.Println("First three sessions:")
	for _, s := range result.Sessions[:3] {
		fmt.Printf("  %s  %s -> %s  (%s)\n",
			s.SessionID,
			cabling.Label(s.SrcRack, s.SrcU, s.SrcSlot, s.SrcPort),
			cabling.Label(s.DstRack, s.DstU, s.DstSlot, s.DstPort),
			s.Media)
	}
	fmt.Println()

	lines := bom.Build(result)
	estimate := bom.EstimateCost(lines, bom.DefaultPriceBook())
	fmt.Printf("Bill of materials (%d line items), estimated cost %s\n",
		len(lines), estimate.Total.StringFixed(2))

	// Re-running the allocator reproduces every identifier
	again, _ := engine.Allocate(ctx, project)
	fmt.Printf("Deterministic: %v\n", again.InputHash == result.InputHash &&
		again.Sessions[0].SessionID == result.Sessions[0].SessionID)
}
