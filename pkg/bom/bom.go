package bom

import (
	"fmt"
	"sort"

	"github.com/patchwork-labs/patchplan/pkg/cabling"
)

// Line is one aggregated bill-of-materials row. Key is the stable
// pricing key; ItemType, Description and Quantity are what bom.csv
// carries.
type Line struct {
	ItemType    string
	Key         string
	Description string
	Quantity    int
}

// itemTypeRank fixes the output grouping: panels, then modules, then
// cables.
func itemTypeRank(itemType string) int {
	switch itemType {
	case "panel":
		return 0
	case "module":
		return 1
	default:
		return 2
	}
}

// Build aggregates a result's panels, modules and cables into
// deterministic BoM lines.
func Build(result *cabling.Result) []Line {
	totals := make(map[string]*Line)

	add := func(itemType, key, description string) {
		entry, ok := totals[key]
		if !ok {
			entry = &Line{ItemType: itemType, Key: key, Description: description}
			totals[key] = entry
		}
		entry.Quantity++
	}

	for _, panel := range result.Panels {
		key := fmt.Sprintf("panel_1u_%dslot", panel.SlotsPerU)
		add("panel", key, fmt.Sprintf("1U patch panel (%d slots)", panel.SlotsPerU))
	}
	for _, module := range result.Modules {
		key := module.Kind
		if module.FiberKind != "" {
			key += "." + module.FiberKind
		}
		add("module", key, moduleDescription(module))
	}
	for _, cable := range result.Cables {
		key := cable.Type
		if cable.FiberKind != "" {
			key += "." + cable.FiberKind
		}
		if cable.Polarity != "" {
			key += "." + cable.Polarity
		}
		add("cable", key, cableDescription(cable))
	}

	lines := make([]Line, 0, len(totals))
	for _, entry := range totals {
		lines = append(lines, *entry)
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if ra, rb := itemTypeRank(a.ItemType), itemTypeRank(b.ItemType); ra != rb {
			return ra < rb
		}
		return a.Key < b.Key
	})
	return lines
}

func moduleDescription(m cabling.Module) string {
	switch m.Kind {
	case cabling.ModuleMPOPassThrough:
		return "MPO-12 pass-through module, 12 ports"
	case cabling.ModuleLCBreakout:
		return fmt.Sprintf("LC breakout module, 2xMPO-12 to 12xLC duplex (%s)", m.FiberKind)
	case cabling.ModuleUTP:
		return "UTP module, 6xRJ-45"
	default:
		return m.Kind
	}
}

func cableDescription(c cabling.Cable) string {
	switch c.Type {
	case cabling.CableMPOTrunk:
		desc := "MPO-12 trunk cable"
		if c.FiberKind != "" {
			desc += fmt.Sprintf(" (%s)", c.FiberKind)
		}
		if c.Polarity != "" {
			desc += fmt.Sprintf(", polarity %s", c.Polarity)
		}
		return desc
	case cabling.CableUTP:
		return "UTP patch cable"
	default:
		return c.Type
	}
}
