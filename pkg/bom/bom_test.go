package bom

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchwork-labs/patchplan/pkg/cabling"
)

func fixtureResult(t *testing.T) *cabling.Result {
	t.Helper()
	project := cabling.Project{
		Version: 1,
		Info:    cabling.ProjectInfo{Name: "bom-fixture"},
		Racks: []cabling.Rack{
			{ID: "R01", Name: "R01"},
			{ID: "R02", Name: "R02"},
			{ID: "R03", Name: "R03"},
		},
		Demands: []cabling.Demand{
			{ID: "D001", Src: "R01", Dst: "R02", EndpointType: cabling.EndpointMMFLCDuplex, Count: 13},
			{ID: "D002", Src: "R01", Dst: "R02", EndpointType: cabling.EndpointMPO12, Count: 14},
			{ID: "D003", Src: "R01", Dst: "R03", EndpointType: cabling.EndpointUTPRJ45, Count: 8},
		},
	}
	result, err := cabling.NewEngine().Allocate(context.Background(), project)
	require.NoError(t, err)
	return result
}

func TestBuild_AggregatesByKind(t *testing.T) {
	lines := Build(fixtureResult(t))

	byKey := make(map[string]Line, len(lines))
	for _, line := range lines {
		byKey[line.Key] = line
	}

	assert.Equal(t, 4, byKey["panel_1u_4slot"].Quantity)
	assert.Equal(t, 4, byKey["mpo12_pass_through_12port"].Quantity)
	assert.Equal(t, 4, byKey["lc_breakout_2xmpo12_to_12xlcduplex.mmf"].Quantity)
	assert.Equal(t, 4, byKey["utp_6xrj45"].Quantity)
	assert.Equal(t, 14, byKey["mpo12_trunk.B"].Quantity)
	assert.Equal(t, 4, byKey["mpo12_trunk.mmf.A"].Quantity)
	assert.Equal(t, 8, byKey["utp_cable"].Quantity)
}

func TestBuild_GroupsPanelsFirst(t *testing.T) {
	lines := Build(fixtureResult(t))
	require.NotEmpty(t, lines)
	assert.Equal(t, "panel", lines[0].ItemType)
	assert.Equal(t, "cable", lines[len(lines)-1].ItemType)
}

func TestBuild_Deterministic(t *testing.T) {
	result := fixtureResult(t)
	assert.Equal(t, Build(result), Build(result))
}

func TestEstimateCost_RollsUp(t *testing.T) {
	lines := []Line{
		{ItemType: "module", Key: "utp_6xrj45", Description: "UTP module, 6xRJ-45", Quantity: 2},
		{ItemType: "cable", Key: "utp_cable", Description: "UTP patch cable", Quantity: 10},
	}
	estimate := EstimateCost(lines, DefaultPriceBook())

	// 2 * 45.00 + 10 * 6.50
	assert.True(t, estimate.Total.Equal(decimal.RequireFromString("155.00")),
		"total = %s", estimate.Total)
	assert.Empty(t, estimate.Unpriced)
}

func TestEstimateCost_ReportsUnpricedKeys(t *testing.T) {
	lines := []Line{
		{ItemType: "panel", Key: "panel_1u_8slot", Description: "1U patch panel (8 slots)", Quantity: 3},
		{ItemType: "cable", Key: "utp_cable", Description: "UTP patch cable", Quantity: 1},
	}
	estimate := EstimateCost(lines, DefaultPriceBook())

	assert.Equal(t, []string{"panel_1u_8slot"}, estimate.Unpriced)
	assert.True(t, estimate.Total.Equal(decimal.RequireFromString("6.50")))
}
