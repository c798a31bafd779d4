package cabling

// Direction controls whether panels fill a rack from the top or the
// bottom.
type Direction string

const (
	DirectionTopDown  Direction = "top_down"
	DirectionBottomUp Direction = "bottom_up"
)

// Valid reports whether d is a known allocation direction.
func (d Direction) Valid() bool {
	return d == DirectionTopDown || d == DirectionBottomUp
}

// PeerSort selects the rack-id comparator used for pair keys, pair
// processing order and UTP peer order.
type PeerSort string

const (
	PeerSortNaturalTrailingDigits PeerSort = "natural_trailing_digits"
	PeerSortLexicographic         PeerSort = "lexicographic"
)

// Valid reports whether p is a known peer-sort strategy.
func (p PeerSort) Valid() bool {
	return p == PeerSortNaturalTrailingDigits || p == PeerSortLexicographic
}

// PanelSettings shape the per-rack slot state machine.
type PanelSettings struct {
	SlotsPerU           int       `json:"slots_per_u" yaml:"slots_per_u" validate:"gte=0"`
	AllocationDirection Direction `json:"allocation_direction" yaml:"allocation_direction"`
}

// OrderingSettings fix every ordering decision the allocator makes.
// A nil SlotCategoryPriority means the default full list; an explicit
// empty list disables every category.
type OrderingSettings struct {
	PeerSort             PeerSort   `json:"peer_sort" yaml:"peer_sort"`
	SlotCategoryPriority []Category `json:"slot_category_priority" yaml:"slot_category_priority"`
}

// LCProfile carries the opaque vendor strings stamped onto LC breakout
// outputs.
type LCProfile struct {
	TrunkPolarity         string `json:"trunk_polarity" yaml:"trunk_polarity"`
	BreakoutModuleVariant string `json:"breakout_module_variant" yaml:"breakout_module_variant"`
}

// MPOProfile carries the opaque vendor strings stamped onto MPO
// end-to-end outputs.
type MPOProfile struct {
	TrunkPolarity      string `json:"trunk_polarity" yaml:"trunk_polarity"`
	PassThroughVariant string `json:"pass_through_variant" yaml:"pass_through_variant"`
}

// FixedProfiles group the vendor profile strings per demand family.
type FixedProfiles struct {
	LCDemands LCProfile  `json:"lc_demands" yaml:"lc_demands"`
	MPOE2E    MPOProfile `json:"mpo_e2e" yaml:"mpo_e2e"`
}

// Settings is the optional settings block of the input document. Zero
// fields take their documented defaults at validation time.
type Settings struct {
	Panel         PanelSettings    `json:"panel" yaml:"panel"`
	Ordering      OrderingSettings `json:"ordering" yaml:"ordering"`
	FixedProfiles FixedProfiles    `json:"fixed_profiles" yaml:"fixed_profiles"`
}

// DefaultCategoryPriority returns the full engine order used when the
// input does not narrow it.
func DefaultCategoryPriority() []Category {
	return []Category{CategoryMPOE2E, CategoryLCMMF, CategoryLCSMF, CategoryUTP}
}

// DefaultSettings returns the settings an empty settings block resolves
// to.
func DefaultSettings() Settings {
	return Settings{
		Panel: PanelSettings{
			SlotsPerU:           4,
			AllocationDirection: DirectionTopDown,
		},
		Ordering: OrderingSettings{
			PeerSort:             PeerSortNaturalTrailingDigits,
			SlotCategoryPriority: DefaultCategoryPriority(),
		},
		FixedProfiles: FixedProfiles{
			LCDemands: LCProfile{TrunkPolarity: "A", BreakoutModuleVariant: "AF"},
			MPOE2E:    MPOProfile{TrunkPolarity: "B", PassThroughVariant: "A"},
		},
	}
}

// applyDefaults fills every unset settings field in place. A nil
// priority list becomes the full default order; an explicit empty list
// is preserved.
func (s *Settings) applyDefaults() {
	def := DefaultSettings()
	if s.Panel.SlotsPerU == 0 {
		s.Panel.SlotsPerU = def.Panel.SlotsPerU
	}
	if s.Panel.AllocationDirection == "" {
		s.Panel.AllocationDirection = def.Panel.AllocationDirection
	}
	if s.Ordering.PeerSort == "" {
		s.Ordering.PeerSort = def.Ordering.PeerSort
	}
	if s.Ordering.SlotCategoryPriority == nil {
		s.Ordering.SlotCategoryPriority = def.Ordering.SlotCategoryPriority
	}
	if s.FixedProfiles.LCDemands.TrunkPolarity == "" {
		s.FixedProfiles.LCDemands.TrunkPolarity = def.FixedProfiles.LCDemands.TrunkPolarity
	}
	if s.FixedProfiles.LCDemands.BreakoutModuleVariant == "" {
		s.FixedProfiles.LCDemands.BreakoutModuleVariant = def.FixedProfiles.LCDemands.BreakoutModuleVariant
	}
	if s.FixedProfiles.MPOE2E.TrunkPolarity == "" {
		s.FixedProfiles.MPOE2E.TrunkPolarity = def.FixedProfiles.MPOE2E.TrunkPolarity
	}
	if s.FixedProfiles.MPOE2E.PassThroughVariant == "" {
		s.FixedProfiles.MPOE2E.PassThroughVariant = def.FixedProfiles.MPOE2E.PassThroughVariant
	}
}
