package cabling

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// stableID hashes a canonical string and returns the type-prefixed
// identifier: prefix + "_" + first 16 hex characters of SHA-256.
func stableID(prefix, canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return prefix + "_" + hex.EncodeToString(sum[:8])
}

// panelCanonical and friends are the single source of truth for the
// canonical strings identifiers are derived from. Changing any of them
// changes every downstream id.

func panelCanonical(rack string, u int) string {
	return fmt.Sprintf("panel|%s|U%d", rack, u)
}

func panelID(rack string, u int) string {
	return stableID("pan", panelCanonical(rack, u))
}

func moduleCanonical(rack string, u, slot int, kind string) string {
	return fmt.Sprintf("module|%s|U%d|S%d|%s", rack, u, slot, kind)
}

func moduleID(rack string, u, slot int, kind string) string {
	return stableID("mod", moduleCanonical(rack, u, slot, kind))
}

// portRef is a (rack, u, slot, port) termination used in cable
// canonical strings.
type portRef struct {
	Rack string
	U    int
	Slot int
	Port int
}

func (p portRef) canonical() string {
	return fmt.Sprintf("%s,%d,%d,%d", p.Rack, p.U, p.Slot, p.Port)
}

// less orders terminations component-wise so cable ids are independent
// of which side the caller names first.
func (p portRef) less(o portRef) bool {
	if p.Rack != o.Rack {
		return p.Rack < o.Rack
	}
	if p.U != o.U {
		return p.U < o.U
	}
	if p.Slot != o.Slot {
		return p.Slot < o.Slot
	}
	return p.Port < o.Port
}

func cableCanonical(a, b portRef, media, polarity string, chunk, trunk int) string {
	if b.less(a) {
		a, b = b, a
	}
	return fmt.Sprintf("cable|%s|%s|%s|%s|%d|%d", a.canonical(), b.canonical(), media, polarity, chunk, trunk)
}

func cableID(a, b portRef, media, polarity string, chunk, trunk int) string {
	return stableID("cab", cableCanonical(a, b, media, polarity, chunk, trunk))
}

// cableMedia folds the cable type and fiber kind into the media field
// of the cable canonical string.
func cableMedia(cableType, fiberKind string) string {
	if fiberKind == "" {
		return cableType
	}
	return cableType + "." + fiberKind
}

func sessionCanonical(media EndpointType, src, dst portRef) string {
	return fmt.Sprintf("session|%s|%s|%d|%d|%d|%s|%d|%d|%d",
		media, src.Rack, src.U, src.Slot, src.Port, dst.Rack, dst.U, dst.Slot, dst.Port)
}

func sessionID(media EndpointType, src, dst portRef) string {
	return stableID("ses", sessionCanonical(media, src, dst))
}

// Label renders the human-facing port label used on printed runs and in
// sessions.csv: {rack}U{u}S{slot}P{port}.
func Label(rack string, u, slot, port int) string {
	return fmt.Sprintf("%sU%dS%dP%d", rack, u, slot, port)
}
