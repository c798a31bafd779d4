package cabling

import "sort"

// LogicalDiff compares two results by session identity (session_id).
type LogicalDiff struct {
	Added    []string `json:"added"`
	Removed  []string `json:"removed"`
	Modified []string `json:"modified"`
}

// Empty reports whether the two documents were logically identical.
func (d LogicalDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Modified) == 0
}

// LogicalDiffOf classifies session ids present in only one document and
// shared ids whose payload changed. All slices are sorted.
func LogicalDiffOf(old, new *Result) LogicalDiff {
	oldByID := sessionsByID(old)
	newByID := sessionsByID(new)

	var d LogicalDiff
	for id, session := range newByID {
		prev, ok := oldByID[id]
		switch {
		case !ok:
			d.Added = append(d.Added, id)
		case prev != session:
			d.Modified = append(d.Modified, id)
		}
	}
	for id := range oldByID {
		if _, ok := newByID[id]; !ok {
			d.Removed = append(d.Removed, id)
		}
	}
	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Modified)
	return d
}

// PhysTuple is the physical termination identity of a session: media
// plus both (rack, face, u, slot, port) ends.
type PhysTuple struct {
	Media   EndpointType `json:"media"`
	SrcRack string       `json:"src_rack"`
	SrcFace string       `json:"src_face"`
	SrcU    int          `json:"src_u"`
	SrcSlot int          `json:"src_slot"`
	SrcPort int          `json:"src_port"`
	DstRack string       `json:"dst_rack"`
	DstFace string       `json:"dst_face"`
	DstU    int          `json:"dst_u"`
	DstSlot int          `json:"dst_slot"`
	DstPort int          `json:"dst_port"`
}

func tupleOf(s Session) PhysTuple {
	return PhysTuple{
		Media:   s.Media,
		SrcRack: s.SrcRack, SrcFace: s.SrcFace, SrcU: s.SrcU, SrcSlot: s.SrcSlot, SrcPort: s.SrcPort,
		DstRack: s.DstRack, DstFace: s.DstFace, DstU: s.DstU, DstSlot: s.DstSlot, DstPort: s.DstPort,
	}
}

// less orders tuples field by field for stable diff output.
func (t PhysTuple) less(o PhysTuple) bool {
	if t.Media != o.Media {
		return t.Media < o.Media
	}
	if t.SrcRack != o.SrcRack {
		return t.SrcRack < o.SrcRack
	}
	if t.SrcU != o.SrcU {
		return t.SrcU < o.SrcU
	}
	if t.SrcSlot != o.SrcSlot {
		return t.SrcSlot < o.SrcSlot
	}
	if t.SrcPort != o.SrcPort {
		return t.SrcPort < o.SrcPort
	}
	if t.DstRack != o.DstRack {
		return t.DstRack < o.DstRack
	}
	if t.DstU != o.DstU {
		return t.DstU < o.DstU
	}
	if t.DstSlot != o.DstSlot {
		return t.DstSlot < o.DstSlot
	}
	return t.DstPort < o.DstPort
}

// Collision is a physical location present in both documents but bound
// to different logical sessions — the location is stable while its
// identity drifted.
type Collision struct {
	Tuple        PhysTuple `json:"tuple"`
	OldSessionID string    `json:"old_session_id"`
	NewSessionID string    `json:"new_session_id"`
}

// PhysicalDiff compares two results by termination tuple.
type PhysicalDiff struct {
	Added      []PhysTuple `json:"added"`
	Removed    []PhysTuple `json:"removed"`
	Collisions []Collision `json:"collisions"`
}

// Empty reports whether the two documents were physically identical.
func (d PhysicalDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Collisions) == 0
}

// PhysicalDiffOf classifies termination tuples by membership and
// surfaces tuples whose session id changed between the documents.
func PhysicalDiffOf(old, new *Result) PhysicalDiff {
	oldByTuple := sessionsByTuple(old)
	newByTuple := sessionsByTuple(new)

	var d PhysicalDiff
	for tuple, session := range newByTuple {
		prev, ok := oldByTuple[tuple]
		switch {
		case !ok:
			d.Added = append(d.Added, tuple)
		case prev.SessionID != session.SessionID:
			d.Collisions = append(d.Collisions, Collision{
				Tuple:        tuple,
				OldSessionID: prev.SessionID,
				NewSessionID: session.SessionID,
			})
		}
	}
	for tuple := range oldByTuple {
		if _, ok := newByTuple[tuple]; !ok {
			d.Removed = append(d.Removed, tuple)
		}
	}
	sort.Slice(d.Added, func(i, j int) bool { return d.Added[i].less(d.Added[j]) })
	sort.Slice(d.Removed, func(i, j int) bool { return d.Removed[i].less(d.Removed[j]) })
	sort.Slice(d.Collisions, func(i, j int) bool { return d.Collisions[i].Tuple.less(d.Collisions[j].Tuple) })
	return d
}

func sessionsByID(r *Result) map[string]Session {
	out := make(map[string]Session, len(r.Sessions))
	for _, s := range r.Sessions {
		out[s.SessionID] = s
	}
	return out
}

func sessionsByTuple(r *Result) map[PhysTuple]Session {
	out := make(map[PhysTuple]Session, len(r.Sessions))
	for _, s := range r.Sessions {
		out[tupleOf(s)] = s
	}
	return out
}
