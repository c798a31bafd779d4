package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchwork-labs/patchplan/pkg/bom"
	"github.com/patchwork-labs/patchplan/pkg/cabling"
)

func fixtureResult(t *testing.T) *cabling.Result {
	t.Helper()
	project := cabling.Project{
		Version: 1,
		Info:    cabling.ProjectInfo{Name: "export-fixture"},
		Racks: []cabling.Rack{
			{ID: "R01", Name: "R01"},
			{ID: "R02", Name: "R02"},
		},
		Demands: []cabling.Demand{
			{ID: "D1", Src: "R01", Dst: "R02", EndpointType: cabling.EndpointMMFLCDuplex, Count: 3},
			{ID: "D2", Src: "R01", Dst: "R02", EndpointType: cabling.EndpointMPO12, Count: 2},
		},
	}
	result, err := cabling.NewEngine().Allocate(context.Background(), project)
	require.NoError(t, err)
	return result
}

func TestSessionsCSV_HeaderContract(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, SessionsCSV(&buf, fixtureResult(t), "proj", "rev1"))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	wantHeader := []string{
		"project_id", "revision_id", "session_id", "media", "cable_id", "cable_seq",
		"adapter_type", "label_a", "label_b",
		"src_rack", "src_face", "src_u", "src_slot", "src_port",
		"dst_rack", "dst_face", "dst_u", "dst_slot", "dst_port",
		"fiber_a", "fiber_b", "notes",
	}
	assert.Equal(t, wantHeader, records[0])
	assert.Len(t, records, 1+5) // header + 3 LC + 2 MPO sessions
}

func TestSessionsCSV_RowContent(t *testing.T) {
	result := fixtureResult(t)
	var buf bytes.Buffer
	require.NoError(t, SessionsCSV(&buf, result, "proj", "rev1"))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	for i, row := range records[1:] {
		session := result.Sessions[i]
		assert.Equal(t, "proj", row[0])
		assert.Equal(t, "rev1", row[1])
		assert.Equal(t, session.SessionID, row[2])
		assert.Equal(t, cabling.Label(session.SrcRack, session.SrcU, session.SrcSlot, session.SrcPort), row[7])
		assert.Equal(t, cabling.Label(session.DstRack, session.DstU, session.DstSlot, session.DstPort), row[8])
		assert.Equal(t, "front", row[10])
		assert.Equal(t, "front", row[15])
		if session.Media == cabling.EndpointMPO12 {
			assert.Empty(t, row[19], "mpo sessions carry no fiber strands")
			assert.Empty(t, row[20])
		} else {
			assert.NotEmpty(t, row[19])
			assert.NotEmpty(t, row[20])
		}
		assert.NotEmpty(t, row[5], "cable_seq must be filled")
	}
}

func TestBOMCSV_Shape(t *testing.T) {
	result := fixtureResult(t)
	var buf bytes.Buffer
	require.NoError(t, BOMCSV(&buf, bom.Build(result)))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"item_type", "description", "quantity"}, records[0])
	require.Greater(t, len(records), 1)
	assert.Equal(t, "panel", records[1][0])
}

func TestResultJSON_RoundTrip(t *testing.T) {
	result := fixtureResult(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "result.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, ResultJSON(f, result))
	require.NoError(t, f.Close())

	loaded, err := ReadResult(path)
	require.NoError(t, err)

	assert.Equal(t, result.InputHash, loaded.InputHash)
	assert.Equal(t, result.Metrics, loaded.Metrics)
	assert.Equal(t, result.Sessions, loaded.Sessions)

	// A reloaded document diffs clean against the original.
	assert.True(t, cabling.LogicalDiffOf(result, loaded).Empty())
	assert.True(t, cabling.PhysicalDiffOf(result, loaded).Empty())
}

func TestWriteAll_ProducesThreeFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteAll(dir, fixtureResult(t), "proj", "rev1"))

	for _, name := range []string{"sessions.csv", "bom.csv", "result.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
