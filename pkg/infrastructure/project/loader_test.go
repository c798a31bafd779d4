package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchwork-labs/patchplan/pkg/cabling"
)

const sampleDoc = `
version: 1
project:
  name: row-3
  note: east hall
racks:
  - {id: R01, name: "Rack 1"}
  - {id: R02, name: "Rack 2", max_u: 45}
demands:
  - {id: D001, src: R01, dst: R02, endpoint_type: mpo12, count: 14}
settings:
  panel:
    slots_per_u: 4
    allocation_direction: bottom_up
  ordering:
    peer_sort: lexicographic
    slot_category_priority: [mpo_e2e, utp]
  fixed_profiles:
    lc_demands:
      trunk_polarity: A
      breakout_module_variant: AF
    mpo_e2e:
      trunk_polarity: B
      pass_through_variant: A
`

func TestParse_FullDocument(t *testing.T) {
	loader := NewLoader()
	p, err := loader.Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 1, p.Version)
	assert.Equal(t, "row-3", p.Info.Name)
	assert.Equal(t, "east hall", p.Info.Note)
	require.Len(t, p.Racks, 2)
	assert.Equal(t, 45, p.Racks[1].MaxU)
	require.Len(t, p.Demands, 1)
	assert.Equal(t, cabling.EndpointMPO12, p.Demands[0].EndpointType)
	assert.Equal(t, 14, p.Demands[0].Count)
	assert.Equal(t, cabling.DirectionBottomUp, p.Settings.Panel.AllocationDirection)
	assert.Equal(t, cabling.PeerSortLexicographic, p.Settings.Ordering.PeerSort)
	assert.Equal(t,
		[]cabling.Category{cabling.CategoryMPOE2E, cabling.CategoryUTP},
		p.Settings.Ordering.SlotCategoryPriority)
}

func TestParse_RejectsUnknownTopLevelKey(t *testing.T) {
	doc := `
version: 1
project: {name: x}
racks:
  - {id: R01, name: "Rack 1"}
demands: []
extras: true
`
	_, err := NewLoader().Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extras")
}

func TestParse_RejectsUnknownNestedKey(t *testing.T) {
	doc := `
version: 1
project: {name: x}
racks:
  - {id: R01, name: "Rack 1", height: 42}
demands: []
`
	_, err := NewLoader().Parse(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "height")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}

func TestLoad_ReadsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0o644))

	p, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "row-3", p.Info.Name)
}
