package cabling

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Engine implements the deterministic cabling allocation logic. It is
// stateless; every call to Allocate is an independent pure function of
// its input.
type Engine struct{}

// NewEngine creates a cabling engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Allocate validates the project and produces the complete wiring plan.
// Validation failures are returned as an error and nothing is
// allocated. Rack overflows do not fail the call; they are recorded in
// Result.Errors and the plan is marked incomplete.
func (e *Engine) Allocate(ctx context.Context, project Project) (*Result, error) {
	validated, err := ValidateProject(project)
	if err != nil {
		return nil, err
	}

	hash, err := InputHash(&validated)
	if err != nil {
		return nil, err
	}

	r := newRun(&validated)

	handled := make(map[Category]bool, 4)
	for _, cat := range validated.Settings.Ordering.SlotCategoryPriority {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch cat {
		case CategoryMPOE2E:
			r.placeMPOEndToEnd()
		case CategoryLCMMF:
			r.placeLCBreakout(EndpointMMFLCDuplex, "mmf")
		case CategoryLCSMF:
			r.placeLCBreakout(EndpointSMFLCDuplex, "smf")
		case CategoryUTP:
			r.placeUTP()
		}
		handled[cat] = true
	}
	r.warnSkippedCategories(handled)

	return r.buildResult(hash), nil
}

// panelKey identifies a panel position before ids are assigned.
type panelKey struct {
	rack string
	u    int
}

// run carries the mutable state of one allocation pass.
type run struct {
	project    *Project
	norm       *normalized
	allocators map[string]*RackSlotAllocator

	panels      map[panelKey]Panel
	modules     []Module
	cables      map[string]Cable
	sessions    []Session
	warnings    []Warning
	errors      []AllocationError
	pairDetails []PairDetail
}

func newRun(project *Project) *run {
	r := &run{
		project:    project,
		norm:       normalizeDemands(project),
		allocators: make(map[string]*RackSlotAllocator, len(project.Racks)),
		panels:     make(map[panelKey]Panel),
		cables:     make(map[string]Cable),
	}
	for _, rack := range project.Racks {
		r.allocators[rack.ID] = NewRackSlotAllocator(
			rack.ID,
			project.Settings.Panel.SlotsPerU,
			rack.MaxU,
			project.Settings.Panel.AllocationDirection,
		)
	}
	return r
}

// reserve takes the next slot on a rack, recording an allocation error
// on overflow.
func (r *run) reserve(rackID string) (SlotRef, bool) {
	ref, err := r.allocators[rackID].ReserveOne()
	if err != nil {
		var overflow *RackOverflowError
		if errors.As(err, &overflow) {
			r.errors = append(r.errors, AllocationError{
				Kind:    ErrKindRackOverflow,
				Message: overflow.Error(),
				RackID:  overflow.RackID,
				Index:   overflow.Index,
			})
		}
		return SlotRef{}, false
	}
	return ref, true
}

// ensurePanel creates the panel containing a reserved slot if its U is
// new on that rack.
func (r *run) ensurePanel(ref SlotRef) {
	key := panelKey{rack: ref.RackID, u: ref.U}
	if _, ok := r.panels[key]; ok {
		return
	}
	r.panels[key] = Panel{
		PanelID:   panelID(ref.RackID, ref.U),
		RackID:    ref.RackID,
		U:         ref.U,
		SlotsPerU: r.project.Settings.Panel.SlotsPerU,
	}
}

// placeModule records a module in a reserved slot, creating its panel
// first.
func (r *run) placeModule(ref SlotRef, kind, fiberKind, variant, peer string, dedicated bool) {
	r.ensurePanel(ref)
	r.modules = append(r.modules, Module{
		ModuleID:        moduleID(ref.RackID, ref.U, ref.Slot, kind),
		RackID:          ref.RackID,
		U:               ref.U,
		Slot:            ref.Slot,
		Kind:            kind,
		FiberKind:       fiberKind,
		PolarityVariant: variant,
		PeerRackID:      peer,
		Dedicated:       dedicated,
	})
}

// addCable records a cable unless the id is already present.
func (r *run) addCable(id, cableType, fiberKind, polarity string) {
	if _, ok := r.cables[id]; ok {
		return
	}
	r.cables[id] = Cable{
		CableID:   id,
		Type:      cableType,
		FiberKind: fiberKind,
		Polarity:  polarity,
	}
}

// addSession records one port-to-port session. src carries the sorted
// pair's first side.
func (r *run) addSession(media EndpointType, cableID, adapter string, src, dst portRef, fiberA, fiberB int) {
	r.sessions = append(r.sessions, Session{
		SessionID:   sessionID(media, src, dst),
		Media:       media,
		CableID:     cableID,
		AdapterType: adapter,
		SrcRack:     src.Rack,
		SrcFace:     FaceFront,
		SrcU:        src.U,
		SrcSlot:     src.Slot,
		SrcPort:     src.Port,
		DstRack:     dst.Rack,
		DstFace:     FaceFront,
		DstU:        dst.U,
		DstSlot:     dst.Slot,
		DstPort:     dst.Port,
		FiberA:      fiberA,
		FiberB:      fiberB,
	})
}

// warnSkippedCategories emits one warning per category that has demand
// but was absent from the priority list.
func (r *run) warnSkippedCategories(handled map[Category]bool) {
	for _, cat := range DefaultCategoryPriority() {
		if handled[cat] {
			continue
		}
		total := 0
		for _, bucket := range r.norm.buckets {
			if bucket.Endpoint.Category() == cat {
				total += bucket.Count
			}
		}
		if total == 0 {
			continue
		}
		r.warnings = append(r.warnings, Warning{
			Kind:     WarnCategorySkipped,
			Category: cat,
			Message: fmt.Sprintf("category %s is not in slot_category_priority; %d demanded sessions were not placed",
				cat, total),
		})
	}
}

// buildResult freezes the run into the canonical result document.
func (r *run) buildResult(inputHash string) *Result {
	cmp := r.norm.cmp

	panels := make([]Panel, 0, len(r.panels))
	for _, panel := range r.panels {
		panels = append(panels, panel)
	}
	sort.Slice(panels, func(i, j int) bool {
		if c := cmp(panels[i].RackID, panels[j].RackID); c != 0 {
			return c < 0
		}
		return panels[i].U < panels[j].U
	})

	modules := append([]Module(nil), r.modules...)
	sort.Slice(modules, func(i, j int) bool {
		a, b := modules[i], modules[j]
		if c := cmp(a.RackID, b.RackID); c != 0 {
			return c < 0
		}
		if a.U != b.U {
			return a.U < b.U
		}
		return a.Slot < b.Slot
	})

	cables := make([]Cable, 0, len(r.cables))
	for _, cable := range r.cables {
		cables = append(cables, cable)
	}
	sort.Slice(cables, func(i, j int) bool { return cables[i].CableID < cables[j].CableID })
	for i := range cables {
		cables[i].CableSeq = i + 1
	}

	sessions := append([]Session(nil), r.sessions...)
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].SessionID < sessions[j].SessionID })

	details := append([]PairDetail(nil), r.pairDetails...)
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]
		if c := cmp(a.RackA, b.RackA); c != 0 {
			return c < 0
		}
		if c := cmp(a.RackB, b.RackB); c != 0 {
			return c < 0
		}
		return a.Category < b.Category
	})

	warnings := append([]Warning(nil), r.warnings...)
	errs := append([]AllocationError(nil), r.errors...)

	return &Result{
		Project:   *r.project,
		InputHash: inputHash,
		Panels:    panels,
		Modules:   modules,
		Cables:    cables,
		Sessions:  sessions,
		Warnings:  warnings,
		Errors:    errs,
		Metrics: Metrics{
			RackCount:    len(r.project.Racks),
			PanelCount:   len(panels),
			ModuleCount:  len(modules),
			CableCount:   len(cables),
			SessionCount: len(sessions),
		},
		PairDetails: details,
	}
}

// ceilDiv is integer division rounding up.
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
