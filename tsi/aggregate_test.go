package tsi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableNamePlainMethods(t *testing.T) {
	assert.Equal(t, "AvgVarAggregate", Aggregation{Method: "avg"}.variableName())
	assert.Equal(t, "MinVarAggregate", Aggregation{Method: "min"}.variableName())
	assert.Equal(t, "StdevVarAggregate", Aggregation{Method: "stdev"}.variableName())
}

func TestVariableNameInterpolatedMethods(t *testing.T) {
	linear := Aggregation{Method: "twavg", InterpolationKind: "Linear", InterpolationSpan: "P1D"}
	step := Aggregation{Method: "left", InterpolationKind: "Step", InterpolationSpan: "PT5M"}

	assert.Equal(t, "LinearTwavgInterpolation", linear.variableName())
	assert.Equal(t, "StepLeftInterpolation", step.variableName())
}

func TestInlineVariablePlain(t *testing.T) {
	v := Aggregation{Method: "avg"}.inlineVariable("$event.[value].Double")

	assert.Equal(t, "numeric", v.Kind)
	require.NotNil(t, v.Value)
	assert.Equal(t, "$event.[value].Double", v.Value.Tsx)
	require.NotNil(t, v.Aggregation)
	assert.Equal(t, "avg($value)", v.Aggregation.Tsx)
	assert.Nil(t, v.Interpolation)
}

func TestInlineVariableInterpolated(t *testing.T) {
	agg := Aggregation{Method: "twsum", InterpolationKind: "Step", InterpolationSpan: "P1D"}
	v := agg.inlineVariable("$event.value")

	require.NotNil(t, v.Aggregation)
	assert.Equal(t, "twsum($value)", v.Aggregation.Tsx)
	require.NotNil(t, v.Interpolation)
	assert.Equal(t, "Step", v.Interpolation.Kind)
	assert.Equal(t, "P1D", v.Interpolation.Boundary.Span)
}

func TestValidateRejectsUnknownMethod(t *testing.T) {
	err := Aggregation{Method: "percentile"}.validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestValidateInterpolatedNeedsKindAndSpan(t *testing.T) {
	var verr *ValidationError

	err := Aggregation{Method: "twavg"}.validate()
	require.ErrorAs(t, err, &verr)

	err = Aggregation{Method: "twavg", InterpolationKind: "Linear"}.validate()
	require.ErrorAs(t, err, &verr)

	err = Aggregation{Method: "twavg", InterpolationKind: "Linear", InterpolationSpan: "P1D"}.validate()
	assert.NoError(t, err)
}

func TestValidateRejectsUnknownInterpolationKind(t *testing.T) {
	err := Aggregation{Method: "right", InterpolationKind: "Cubic", InterpolationSpan: "P1D"}.validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestResolveModePrecedence(t *testing.T) {
	avg := []Aggregation{{Method: "avg"}}

	tests := []struct {
		name    string
		spec    QuerySpec
		want    RequestMode
		wantErr bool
	}{
		{"auto without aggregations", QuerySpec{}, ModeGetSeries, false},
		{"auto with aggregations", QuerySpec{Aggregations: avg}, ModeAggregateSeries, false},
		{"explicit events ignores aggregations", QuerySpec{Mode: ModeGetEvents, Aggregations: avg}, ModeGetEvents, false},
		{"explicit raw with aggregations", QuerySpec{Mode: ModeGetSeries, Aggregations: avg}, "", true},
		{"explicit aggregate without aggregations", QuerySpec{Mode: ModeAggregateSeries}, "", true},
		{"unknown mode", QuerySpec{Mode: RequestMode("getTrends")}, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mode, err := tc.spec.resolveMode()
			if tc.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, mode)
		})
	}
}
