package pdf

import (
	"bytes"
	"fmt"
	"testing"

	"fitplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	lines := domain.ReportLines(domain.Plan{
		Name:      "Alex",
		Goal:      domain.GoalStayFit,
		DietType:  domain.DietVegan,
		Region:    domain.RegionWest,
		BMI:       21.5,
		BMIStatus: domain.BMINormal,
		Workout:   []string{"Yoga", "Planks", "Cycling"},
		Meals:     []string{"Thepla", "Sprout Salad", "Tofu Stir Fry"},
	})

	out, err := New().Render(lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing pdf header")
	assert.True(t, bytes.Contains(out, []byte("%%EOF")), "missing pdf trailer")
}

func TestRender_Paginates(t *testing.T) {
	lines := []string{domain.ReportTitle}
	for i := 0; i < 100; i++ {
		lines = append(lines, fmt.Sprintf("  - line %d", i))
	}
	out, err := New().Render(lines)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, bytes.Count(out, []byte("/Type /Page\n")), 3)
}

func TestRender_NonLatinName(t *testing.T) {
	_, err := New().Render([]string{domain.ReportTitle, "Name: Zoë Ångström"})
	assert.NoError(t, err)
}

func TestRender_Empty(t *testing.T) {
	out, err := New().Render(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestMetadata(t *testing.T) {
	r := New()
	assert.Equal(t, "application/pdf", r.ContentType())
	assert.Equal(t, ".pdf", r.Extension())
}
