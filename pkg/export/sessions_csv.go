package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/patchwork-labs/patchplan/pkg/cabling"
)

// sessionColumns is the fixed sessions.csv header. Order and spelling
// are part of the external contract.
var sessionColumns = []string{
	"project_id", "revision_id", "session_id", "media", "cable_id", "cable_seq",
	"adapter_type", "label_a", "label_b",
	"src_rack", "src_face", "src_u", "src_slot", "src_port",
	"dst_rack", "dst_face", "dst_u", "dst_slot", "dst_port",
	"fiber_a", "fiber_b", "notes",
}

// SessionsCSV writes the sessions table for a result: one header row
// plus one row per session, in the result's session order.
func SessionsCSV(w io.Writer, result *cabling.Result, projectID, revisionID string) error {
	seqByCable := make(map[string]int, len(result.Cables))
	for _, cable := range result.Cables {
		seqByCable[cable.CableID] = cable.CableSeq
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(sessionColumns); err != nil {
		return fmt.Errorf("failed to write sessions header: %w", err)
	}
	for _, s := range result.Sessions {
		row := []string{
			projectID,
			revisionID,
			s.SessionID,
			string(s.Media),
			s.CableID,
			strconv.Itoa(seqByCable[s.CableID]),
			s.AdapterType,
			cabling.Label(s.SrcRack, s.SrcU, s.SrcSlot, s.SrcPort),
			cabling.Label(s.DstRack, s.DstU, s.DstSlot, s.DstPort),
			s.SrcRack, s.SrcFace, strconv.Itoa(s.SrcU), strconv.Itoa(s.SrcSlot), strconv.Itoa(s.SrcPort),
			s.DstRack, s.DstFace, strconv.Itoa(s.DstU), strconv.Itoa(s.DstSlot), strconv.Itoa(s.DstPort),
			fiberColumn(s.FiberA),
			fiberColumn(s.FiberB),
			s.Notes,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write session %s: %w", s.SessionID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// fiberColumn renders a strand number, blank when the session carries
// none.
func fiberColumn(fiber int) string {
	if fiber == 0 {
		return ""
	}
	return strconv.Itoa(fiber)
}
