package cabling

// placeLCBreakout lays out LC duplex demands of one fiber kind. Each
// chunk of up to 12 LC ports consumes one breakout module slot per side
// and exactly two MPO trunk cables shared by the chunk's sessions:
// LC port p rides MPO-1 when p <= 6 and MPO-2 otherwise, on fiber pair
// (2p'-1, 2p') with p' = ((p-1) mod 6) + 1.
func (r *run) placeLCBreakout(endpoint EndpointType, fiberKind string) {
	profile := r.project.Settings.FixedProfiles.LCDemands
	for _, bucket := range r.norm.byEndpoint(endpoint) {
		a, b := bucket.Key.A, bucket.Key.B
		chunks := ceilDiv(bucket.Count, lcPortsPerModule)
		detail := PairDetail{
			RackA:    a,
			RackB:    b,
			Category: endpoint.Category(),
			Demand:   bucket.Count,
			Chunks:   chunks,
			Flipped:  bucket.Flipped,
		}

		for k := 1; k <= chunks; k++ {
			refA, okA := r.reserve(a)
			refB, okB := r.reserve(b)
			if !okA || !okB {
				continue
			}
			detail.SlotsA++
			detail.SlotsB++
			r.placeModule(refA, ModuleLCBreakout, fiberKind, profile.BreakoutModuleVariant, b, true)
			r.placeModule(refB, ModuleLCBreakout, fiberKind, profile.BreakoutModuleVariant, a, true)

			// The two trunks land on the module's rear MPO ports 1 and 2.
			var trunkIDs [2]string
			for trunk := 1; trunk <= 2; trunk++ {
				endA := portRef{Rack: refA.RackID, U: refA.U, Slot: refA.Slot, Port: trunk}
				endB := portRef{Rack: refB.RackID, U: refB.U, Slot: refB.Slot, Port: trunk}
				id := cableID(endA, endB, cableMedia(CableMPOTrunk, fiberKind), profile.TrunkPolarity, k, trunk)
				r.addCable(id, CableMPOTrunk, fiberKind, profile.TrunkPolarity)
				trunkIDs[trunk-1] = id
			}

			used := bucket.Count - (k-1)*lcPortsPerModule
			if used > lcPortsPerModule {
				used = lcPortsPerModule
			}
			for port := 1; port <= used; port++ {
				trunk := 1
				if port > lcPortsPerModule/2 {
					trunk = 2
				}
				within := (port-1)%(lcPortsPerModule/2) + 1
				fiberA := 2*within - 1
				fiberB := 2 * within

				src := portRef{Rack: refA.RackID, U: refA.U, Slot: refA.Slot, Port: port}
				dst := portRef{Rack: refB.RackID, U: refB.U, Slot: refB.Slot, Port: port}
				r.addSession(endpoint, trunkIDs[trunk-1], ModuleLCBreakout, src, dst, fiberA, fiberB)
				detail.Sessions++
			}
		}
		r.pairDetails = append(r.pairDetails, detail)
	}
}
