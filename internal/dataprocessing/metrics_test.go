package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pdxpulse/pkg/contracts/domain"
)

func TestComputeTotals(t *testing.T) {
	rows := []domain.NormalizedRow{
		{Impressions: 300, Reach: 100},
		{Impressions: 150, Reach: 50},
	}
	assert.Equal(t, domain.Totals{Impressions: 450, Reach: 150, AverageFrequency: 3, Locations: 2}, ComputeTotals(rows))
	assert.Equal(t, domain.Totals{}, ComputeTotals(nil))
	assert.Equal(t, 0.0, ComputeTotals([]domain.NormalizedRow{{Impressions: 10}}).AverageFrequency)
}

func TestDistribution(t *testing.T) {
	rows := []domain.NormalizedRow{
		{Audience: domain.AudienceCounts{Age18To24: 5, Age70Plus: 1, IOS: 4, Android: 6}},
		{Audience: domain.AudienceCounts{Age18To24: 2, Age30To39: 9, Android: 1}},
	}

	age := Distribution(rows, domain.AgeColumns)
	assert.Equal(t, []domain.BracketTotal{
		{Label: "18-24", Total: 7},
		{Label: "25-29", Total: 0},
		{Label: "30-39", Total: 9},
		{Label: "40-49", Total: 0},
		{Label: "50-59", Total: 0},
		{Label: "60-69", Total: 0},
		{Label: "70+", Total: 1},
	}, age)

	platform := Distribution(rows, domain.PlatformColumns)
	assert.Equal(t, []domain.BracketTotal{{Label: "iOS", Total: 4}, {Label: "Android", Total: 7}}, platform)

	var extra domain.NormalizedRow
	extra.SetNumber("Custom (x_y)", 2)
	assert.Equal(t, []domain.BracketTotal{{Label: "x-y", Total: 2}}, Distribution([]domain.NormalizedRow{extra, {}}, []string{"Custom (x_y)"}))
}

func TestBracketLabel(t *testing.T) {
	assert.Equal(t, "Masculino", BracketLabel(domain.ColumnGenderMale))
	assert.Equal(t, "A", BracketLabel(domain.ColumnSocioA))
	assert.Equal(t, "60-69", BracketLabel(domain.ColumnAge60To69))
	assert.Equal(t, "iOS", BracketLabel(domain.ColumnPlatformIOS))
	assert.Equal(t, "plain", BracketLabel("plain"))
}
