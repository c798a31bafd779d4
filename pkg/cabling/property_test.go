package cabling

import (
	"context"
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomProject builds a small random project from a seed. The seed is
// part of the generated tuple, so gopter can shrink and replay it.
func randomProject(rackCount, demandCount int, seed int64) Project {
	rng := rand.New(rand.NewSource(seed))
	endpoints := EndpointTypes()

	racks := make([]Rack, rackCount)
	for i := range racks {
		racks[i] = Rack{ID: fmt.Sprintf("R%d", i+1), Name: fmt.Sprintf("Rack %d", i+1)}
	}

	demands := make([]Demand, demandCount)
	for i := range demands {
		src := rng.Intn(rackCount)
		dst := rng.Intn(rackCount - 1)
		if dst >= src {
			dst++
		}
		demands[i] = Demand{
			ID:           fmt.Sprintf("D%d", i+1),
			Src:          racks[src].ID,
			Dst:          racks[dst].ID,
			EndpointType: endpoints[rng.Intn(len(endpoints))],
			Count:        1 + rng.Intn(30),
		}
	}

	return Project{
		Version: 1,
		Info:    ProjectInfo{Name: "property"},
		Racks:   racks,
		Demands: demands,
	}
}

func mustAllocate(p Project) *Result {
	result, err := NewEngine().Allocate(context.Background(), p)
	if err != nil {
		panic(err)
	}
	return result
}

// TestAllocatorInvariants verifies the universal invariants with
// property-based testing. These must hold for every valid project.
func TestAllocatorInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	projectGens := []gopter.Gen{
		gen.IntRange(2, 5),
		gen.IntRange(1, 8),
		gen.Int64(),
	}

	properties.Property("allocation is deterministic", prop.ForAll(
		func(rackCount, demandCount int, seed int64) bool {
			p := randomProject(rackCount, demandCount, seed)
			return reflect.DeepEqual(mustAllocate(p), mustAllocate(p))
		},
		projectGens...,
	))

	properties.Property("sessions conserve demand counts", prop.ForAll(
		func(rackCount, demandCount int, seed int64) bool {
			p := randomProject(rackCount, demandCount, seed)
			result := mustAllocate(p)
			if len(result.Errors) > 0 {
				return true // incomplete plans are exempt
			}
			total := 0
			for _, demand := range p.Demands {
				total += demand.Count
			}
			return result.Metrics.SessionCount == total
		},
		projectGens...,
	))

	properties.Property("identifiers are pairwise distinct", prop.ForAll(
		func(rackCount, demandCount int, seed int64) bool {
			result := mustAllocate(randomProject(rackCount, demandCount, seed))
			seen := make(map[string]struct{})
			check := func(id string) bool {
				if _, dup := seen[id]; dup {
					return false
				}
				seen[id] = struct{}{}
				return true
			}
			for _, panel := range result.Panels {
				if !check(panel.PanelID) {
					return false
				}
			}
			for _, module := range result.Modules {
				if !check(module.ModuleID) {
					return false
				}
			}
			for _, cable := range result.Cables {
				if !check(cable.CableID) {
					return false
				}
			}
			for _, session := range result.Sessions {
				if !check(session.SessionID) {
					return false
				}
			}
			return true
		},
		projectGens...,
	))

	properties.Property("no two modules share a slot", prop.ForAll(
		func(rackCount, demandCount int, seed int64) bool {
			result := mustAllocate(randomProject(rackCount, demandCount, seed))
			type coord struct {
				rack    string
				u, slot int
			}
			seen := make(map[coord]struct{})
			for _, module := range result.Modules {
				c := coord{rack: module.RackID, u: module.U, slot: module.Slot}
				if _, dup := seen[c]; dup {
					return false
				}
				seen[c] = struct{}{}
			}
			return true
		},
		projectGens...,
	))

	properties.Property("mpo sessions are straight pass-through", prop.ForAll(
		func(rackCount, demandCount int, seed int64) bool {
			result := mustAllocate(randomProject(rackCount, demandCount, seed))
			for _, session := range result.Sessions {
				if session.Media == EndpointMPO12 && session.SrcPort != session.DstPort {
					return false
				}
			}
			return true
		},
		projectGens...,
	))

	properties.Property("lc sessions obey the fiber law", prop.ForAll(
		func(rackCount, demandCount int, seed int64) bool {
			result := mustAllocate(randomProject(rackCount, demandCount, seed))
			for _, session := range result.Sessions {
				if session.Media != EndpointMMFLCDuplex && session.Media != EndpointSMFLCDuplex {
					continue
				}
				within := (session.SrcPort-1)%6 + 1
				if session.FiberA != 2*within-1 || session.FiberB != 2*within {
					return false
				}
			}
			return true
		},
		projectGens...,
	))

	properties.Property("self-diff is empty", prop.ForAll(
		func(rackCount, demandCount int, seed int64) bool {
			result := mustAllocate(randomProject(rackCount, demandCount, seed))
			return LogicalDiffOf(result, result).Empty() && PhysicalDiffOf(result, result).Empty()
		},
		projectGens...,
	))

	properties.TestingRun(t)
}
