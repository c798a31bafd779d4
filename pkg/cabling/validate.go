package cabling

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidationError describes a single rejected input field. Path points
// at the offending location in the document, e.g. "demands[2].count".
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func invalid(path, format string, args ...any) error {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// ValidateProject checks p against the input contract and returns a
// default-applied copy ready for allocation. The original value is not
// modified. The first violation found is returned; allocation must not
// start on a project that fails here.
func ValidateProject(p Project) (Project, error) {
	if p.Version != 1 {
		return Project{}, invalid("version", "must be 1, got %d", p.Version)
	}
	if strings.TrimSpace(p.Info.Name) == "" {
		return Project{}, invalid("project.name", "is required")
	}
	if err := validate.Struct(p); err != nil {
		return Project{}, formatStructError(err)
	}

	out := p
	out.Racks = append([]Rack(nil), p.Racks...)
	out.Demands = append([]Demand(nil), p.Demands...)
	out.Settings.Ordering.SlotCategoryPriority = clonePriority(p.Settings.Ordering.SlotCategoryPriority)
	out.Settings.applyDefaults()

	if err := validateSettings(&out.Settings); err != nil {
		return Project{}, err
	}

	rackIDs := make(map[string]struct{}, len(out.Racks))
	for i := range out.Racks {
		rack := &out.Racks[i]
		if _, dup := rackIDs[rack.ID]; dup {
			return Project{}, invalid(fmt.Sprintf("racks[%d].id", i), "duplicate rack id %q", rack.ID)
		}
		rackIDs[rack.ID] = struct{}{}
		if rack.MaxU == 0 {
			rack.MaxU = DefaultMaxU
		}
		if rack.MaxU < 0 {
			return Project{}, invalid(fmt.Sprintf("racks[%d].max_u", i), "must be positive, got %d", rack.MaxU)
		}
	}

	demandIDs := make(map[string]struct{}, len(out.Demands))
	for i, demand := range out.Demands {
		path := func(field string) string { return fmt.Sprintf("demands[%d].%s", i, field) }
		if _, dup := demandIDs[demand.ID]; dup {
			return Project{}, invalid(path("id"), "duplicate demand id %q", demand.ID)
		}
		demandIDs[demand.ID] = struct{}{}
		if !demand.EndpointType.Valid() {
			return Project{}, invalid(path("endpoint_type"), "unsupported endpoint type %q", demand.EndpointType)
		}
		if demand.Src == demand.Dst {
			return Project{}, invalid(path("dst"), "src and dst must differ, both are %q", demand.Src)
		}
		if _, ok := rackIDs[demand.Src]; !ok {
			return Project{}, invalid(path("src"), "references undefined rack %q", demand.Src)
		}
		if _, ok := rackIDs[demand.Dst]; !ok {
			return Project{}, invalid(path("dst"), "references undefined rack %q", demand.Dst)
		}
		if demand.Count <= 0 {
			return Project{}, invalid(path("count"), "must be positive, got %d", demand.Count)
		}
	}

	return out, nil
}

// validateSettings checks the default-applied settings block.
func validateSettings(s *Settings) error {
	if s.Panel.SlotsPerU <= 0 {
		return invalid("settings.panel.slots_per_u", "must be positive, got %d", s.Panel.SlotsPerU)
	}
	if !s.Panel.AllocationDirection.Valid() {
		return invalid("settings.panel.allocation_direction", "must be %q or %q, got %q",
			DirectionTopDown, DirectionBottomUp, s.Panel.AllocationDirection)
	}
	if !s.Ordering.PeerSort.Valid() {
		return invalid("settings.ordering.peer_sort", "must be %q or %q, got %q",
			PeerSortNaturalTrailingDigits, PeerSortLexicographic, s.Ordering.PeerSort)
	}
	seen := make(map[Category]struct{}, len(s.Ordering.SlotCategoryPriority))
	for i, cat := range s.Ordering.SlotCategoryPriority {
		path := fmt.Sprintf("settings.ordering.slot_category_priority[%d]", i)
		if !cat.Valid() {
			return invalid(path, "unknown category %q", cat)
		}
		if _, dup := seen[cat]; dup {
			return invalid(path, "duplicate category %q", cat)
		}
		seen[cat] = struct{}{}
	}
	return nil
}

// formatStructError rewrites validator tag failures into path-addressed
// validation errors.
func formatStructError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}
	fe := fieldErrors[0]
	path := namespaceToPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return invalid(path, "is required")
	case "gt":
		return invalid(path, "must be greater than %s", fe.Param())
	case "gte":
		return invalid(path, "must be at least %s", fe.Param())
	case "min":
		return invalid(path, "must have at least %s entries", fe.Param())
	default:
		return invalid(path, "failed %q validation", fe.Tag())
	}
}

// namespaceToPath converts a validator namespace such as
// "Project.Demands[2].Count" into the document path "demands[2].count".
func namespaceToPath(ns string) string {
	parts := strings.Split(ns, ".")
	if len(parts) > 1 {
		parts = parts[1:] // drop the struct type name
	}
	for i, part := range parts {
		idx := ""
		if open := strings.IndexByte(part, '['); open >= 0 {
			idx = part[open:]
			part = part[:open]
		}
		parts[i] = fieldToKey(part) + idx
	}
	return strings.Join(parts, ".")
}

// fieldToKey maps exported field names to their document spellings.
func fieldToKey(field string) string {
	switch field {
	case "Info":
		return "project"
	case "MaxU":
		return "max_u"
	case "EndpointType":
		return "endpoint_type"
	case "SlotsPerU":
		return "slots_per_u"
	case "AllocationDirection":
		return "allocation_direction"
	case "PeerSort":
		return "peer_sort"
	case "SlotCategoryPriority":
		return "slot_category_priority"
	case "FixedProfiles":
		return "fixed_profiles"
	case "LCDemands":
		return "lc_demands"
	case "MPOE2E":
		return "mpo_e2e"
	default:
		return strings.ToLower(field)
	}
}

func clonePriority(priority []Category) []Category {
	if priority == nil {
		return nil
	}
	return append([]Category(nil), priority...)
}
