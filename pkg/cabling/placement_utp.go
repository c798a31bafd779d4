package cabling

import "fmt"

// placeUTP lays out utp_rj45 demands. UTP allocates by rack first,
// peer second: each rack walks its peers in peer-sort order and fills
// RJ-45 ports 1..6, opening a new shared module only when the current
// one is full. Port lists of the two sides are then paired by position.
func (r *run) placeUTP() {
	assignments := make(map[string]map[string][]portRef)

	for _, rack := range r.norm.utpRacks {
		assignments[rack] = make(map[string][]portRef)
		var current SlotRef
		port := utpPortsPerModule // force a module on first use

		for _, peer := range r.norm.utpPeers[rack] {
			a, b := rack, peer
			if r.norm.cmp(a, b) > 0 {
				a, b = b, a
			}
			bucket, ok := r.norm.utpCount(a, b)
			if !ok {
				continue
			}
			overflowed := false
			for remain := bucket.Count; remain > 0; remain-- {
				if port == utpPortsPerModule {
					ref, ok := r.reserve(rack)
					if !ok {
						overflowed = true
						break
					}
					r.placeModule(ref, ModuleUTP, "", "", "", false)
					current = ref
					port = 0
				}
				port++
				assignments[rack][peer] = append(assignments[rack][peer], portRef{
					Rack: rack,
					U:    current.U,
					Slot: current.Slot,
					Port: port,
				})
			}
			if overflowed {
				break
			}
		}
	}

	for _, bucket := range r.norm.byEndpoint(EndpointUTPRJ45) {
		a, b := bucket.Key.A, bucket.Key.B
		left := assignments[a][b]
		right := assignments[b][a]

		n := len(left)
		if len(right) < n {
			n = len(right)
		}
		if len(left) != len(right) {
			r.warnings = append(r.warnings, Warning{
				Kind:  WarnUTPSideMismatch,
				RackA: a,
				RackB: b,
				Message: fmt.Sprintf("utp sides disagree between %s (%d ports) and %s (%d ports); pairing %d",
					a, len(left), b, len(right), n),
			})
		}

		detail := PairDetail{
			RackA:    a,
			RackB:    b,
			Category: CategoryUTP,
			Demand:   bucket.Count,
			Chunks:   ceilDiv(bucket.Count, utpPortsPerModule),
			SlotsA:   distinctSlots(left[:n]),
			SlotsB:   distinctSlots(right[:n]),
			Flipped:  bucket.Flipped,
		}
		for i := 0; i < n; i++ {
			src, dst := left[i], right[i]
			id := cableID(src, dst, cableMedia(CableUTP, ""), "", 0, i+1)
			r.addCable(id, CableUTP, "", "")
			r.addSession(EndpointUTPRJ45, id, ModuleUTP, src, dst, 0, 0)
			detail.Sessions++
		}
		r.pairDetails = append(r.pairDetails, detail)
	}
}

// distinctSlots counts the distinct (u, slot) coordinates in a port
// list.
func distinctSlots(ports []portRef) int {
	seen := make(map[panelKey]map[int]struct{})
	count := 0
	for _, p := range ports {
		key := panelKey{rack: p.Rack, u: p.U}
		slots, ok := seen[key]
		if !ok {
			slots = make(map[int]struct{})
			seen[key] = slots
		}
		if _, ok := slots[p.Slot]; !ok {
			slots[p.Slot] = struct{}{}
			count++
		}
	}
	return count
}
