package cabling

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// CanonicalInput returns the canonical serialization of a validated,
// default-applied project: UTF-8 JSON with sorted keys, no incidental
// whitespace, newline-terminated. Two inputs that differ only in key
// order, whitespace or spelled-out defaults serialize identically.
func CanonicalInput(p *Project) ([]byte, error) {
	racks := make([]any, 0, len(p.Racks))
	for _, rack := range p.Racks {
		racks = append(racks, map[string]any{
			"id":    rack.ID,
			"name":  rack.Name,
			"max_u": rack.MaxU,
		})
	}

	demands := make([]any, 0, len(p.Demands))
	for _, demand := range p.Demands {
		demands = append(demands, map[string]any{
			"id":            demand.ID,
			"src":           demand.Src,
			"dst":           demand.Dst,
			"endpoint_type": string(demand.EndpointType),
			"count":         demand.Count,
		})
	}

	priority := make([]any, 0, len(p.Settings.Ordering.SlotCategoryPriority))
	for _, cat := range p.Settings.Ordering.SlotCategoryPriority {
		priority = append(priority, string(cat))
	}

	info := map[string]any{"name": p.Info.Name}
	if p.Info.Note != "" {
		info["note"] = p.Info.Note
	}

	doc := map[string]any{
		"version": p.Version,
		"project": info,
		"racks":   racks,
		"demands": demands,
		"settings": map[string]any{
			"panel": map[string]any{
				"slots_per_u":          p.Settings.Panel.SlotsPerU,
				"allocation_direction": string(p.Settings.Panel.AllocationDirection),
			},
			"ordering": map[string]any{
				"peer_sort":              string(p.Settings.Ordering.PeerSort),
				"slot_category_priority": priority,
			},
			"fixed_profiles": map[string]any{
				"lc_demands": map[string]any{
					"trunk_polarity":          p.Settings.FixedProfiles.LCDemands.TrunkPolarity,
					"breakout_module_variant": p.Settings.FixedProfiles.LCDemands.BreakoutModuleVariant,
				},
				"mpo_e2e": map[string]any{
					"trunk_polarity":       p.Settings.FixedProfiles.MPOE2E.TrunkPolarity,
					"pass_through_variant": p.Settings.FixedProfiles.MPOE2E.PassThroughVariant,
				},
			},
		},
	}

	// encoding/json sorts map keys, which is the whole point here.
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize canonical input: %w", err)
	}
	return append(b, '\n'), nil
}

// InputHash returns the hex SHA-256 of the canonical input
// serialization.
func InputHash(p *Project) (string, error) {
	b, err := CanonicalInput(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
