package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insulin_advisor/internal/engine"
)

func TestParse_ArrayForm(t *testing.T) {
	payload := `{
		"GRBS": [180, 200, 190, 185, 175, 160],
		"Insulin": [2, 3, 2.5, 2, 1],
		"CKD": false,
		"Dual inotropes": false,
		"route": "sc",
		"diet_order": "NPO",
		"current_level": 2
	}`

	in, err := Parse([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, engine.ReadingWindow{180, 200, 190, 185, 175}, in.Readings)
	assert.Equal(t, engine.DoseHistory{2, 3, 2.5, 2}, in.Doses)
	assert.Equal(t, engine.RouteSC, in.Route)
	assert.Equal(t, engine.DietNPO, in.Diet)
	assert.Equal(t, 2, in.CurrentLevel)
	assert.False(t, in.Flags.DualInotropes)
}

func TestParse_FlatForm(t *testing.T) {
	payload := `{
		"GRBS1": "360", "GRBS2": 355, "GRBS3": null,
		"Insulin1": "4",
		"dual_inotropes": "true",
		"ckd": true,
		"route": "IV",
		"diet_order": "others"
	}`

	in, err := Parse([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, engine.ReadingWindow{360, 355}, in.Readings)
	assert.Equal(t, engine.DoseHistory{4}, in.Doses)
	assert.True(t, in.Flags.DualInotropes)
	assert.True(t, in.Flags.CKD)
	assert.Equal(t, engine.RouteIV, in.Route)
	assert.Equal(t, engine.DietOther, in.Diet)
	assert.Zero(t, in.CurrentLevel)
}

func TestParse_ArrayWinsOverFlat(t *testing.T) {
	in, err := Parse([]byte(`{"GRBS": [150], "GRBS1": 400, "GRBS2": 390}`))
	require.NoError(t, err)
	assert.Equal(t, engine.ReadingWindow{150}, in.Readings)
}

func TestParse_Defaults(t *testing.T) {
	in, err := Parse([]byte(`{"GRBS": [210], "route": "", "diet_order": null}`))
	require.NoError(t, err)
	assert.Equal(t, engine.RouteSC, in.Route)
	assert.Equal(t, engine.DietOther, in.Diet)
	assert.Equal(t, engine.DoseHistory{}, in.Doses)
	assert.Equal(t, engine.Flags{}, in.Flags)
}

func TestParse_ValidationErrors(t *testing.T) {
	cases := []struct {
		name      string
		payload   string
		wantField string
	}{
		{"not an object", `[1, 2]`, ""},
		{"null payload", `null`, ""},
		{"empty glucose array", `{"GRBS": []}`, "GRBS"},
		{"no glucose at all", `{"Insulin": [2]}`, "GRBS"},
		{"flat form without GRBS1", `{"GRBS2": 180}`, "GRBS1"},
		{"all readings zero", `{"GRBS": [0, 0]}`, "GRBS"},
		{"glucose not an array", `{"GRBS": "180"}`, "GRBS"},
		{"non numeric reading", `{"GRBS": [180, "high"]}`, "GRBS[1]"},
		{"negative reading", `{"GRBS1": -5}`, "GRBS1"},
		{"boolean reading", `{"GRBS": [true]}`, "GRBS[0]"},
		{"negative dose", `{"GRBS": [180], "Insulin": [-1]}`, "Insulin[0]"},
		{"bad route", `{"GRBS": [180], "route": "im"}`, "route"},
		{"route not a string", `{"GRBS": [180], "route": 1}`, "route"},
		{"bad diet", `{"GRBS": [180], "diet_order": "clear liquids"}`, "diet_order"},
		{"bad flag", `{"GRBS": [180], "CKD": "maybe"}`, "CKD"},
		{"flag wrong type", `{"GRBS": [180], "Dual inotropes": [true]}`, "Dual inotropes"},
		{"fractional level", `{"GRBS": [180], "current_level": 2.5}`, "current_level"},
		{"zero level", `{"GRBS": [180], "current_level": 0}`, "current_level"},
		{"reading out of float range", `{"GRBS": [1e400]}`, "GRBS[0]"},
		{"flat reading out of float range", `{"GRBS1": "1e400"}`, "GRBS1"},
		{"implausible reading", `{"GRBS": [180, 25000]}`, "GRBS[1]"},
		{"dose out of float range", `{"GRBS": [180], "Insulin": [1e400]}`, "Insulin[0]"},
		{"implausible dose", `{"GRBS": [180], "Insulin4": 900}`, "Insulin4"},
		{"level out of float range", `{"GRBS": [180], "current_level": 1e400}`, "current_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.payload))
			var vErr *engine.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tc.wantField, vErr.Field)
		})
	}
}

func TestParse_FeedsEngine(t *testing.T) {
	in, err := Parse([]byte(`{"GRBS": [190, 185, 170, 160, 150], "current_level": 7}`))
	require.NoError(t, err)

	res, err := engine.New(engine.DefaultDoseTable()).Recommend(in)
	require.NoError(t, err)
	assert.Equal(t, engine.BasalBolus, res.Algorithm)
	assert.Equal(t, 7, res.Level)
	assert.Equal(t, 6, res.NextCheckHours)
}
