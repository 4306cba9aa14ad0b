package tsi

import (
	"fmt"
	"strings"

	"github.com/insightfinder/tsi-agent/pkg/models"
)

// Aggregation describes one server-side aggregation of a series. Methods in
// interpolatedMethods estimate values between data points and must carry an
// interpolation kind and boundary span.
type Aggregation struct {
	Method            string
	InterpolationKind string // "Linear" or "Step"
	InterpolationSpan string // ISO-8601 duration, e.g. "P1D"
}

var plainMethods = map[string]bool{
	"min":    true,
	"max":    true,
	"sum":    true,
	"avg":    true,
	"first":  true,
	"last":   true,
	"median": true,
	"stdev":  true,
}

var interpolatedMethods = map[string]bool{
	"twsum": true,
	"twavg": true,
	"left":  true,
	"right": true,
}

func (a Aggregation) validate() error {
	switch {
	case plainMethods[a.Method]:
		return nil
	case interpolatedMethods[a.Method]:
		if a.InterpolationKind == "" || a.InterpolationSpan == "" {
			return &ValidationError{Reason: fmt.Sprintf(
				"aggregation method %q requires both an interpolation kind and a boundary span", a.Method)}
		}
		if a.InterpolationKind != "Linear" && a.InterpolationKind != "Step" {
			return &ValidationError{Reason: fmt.Sprintf(
				"interpolation kind %q not supported, must be Linear or Step", a.InterpolationKind)}
		}
		return nil
	default:
		return &ValidationError{Reason: fmt.Sprintf("aggregation method %q not supported", a.Method)}
	}
}

func validateAggregations(aggs []Aggregation) error {
	for _, a := range aggs {
		if err := a.validate(); err != nil {
			return err
		}
	}
	return nil
}

// variableName derives the inline variable name the server echoes back as
// the property name, e.g. AvgVarAggregate or LinearTwavgInterpolation.
func (a Aggregation) variableName() string {
	if interpolatedMethods[a.Method] {
		return a.InterpolationKind + capitalize(a.Method) + "Interpolation"
	}
	return capitalize(a.Method) + "VarAggregate"
}

// inlineVariable builds the numeric variable evaluating this aggregation
// over the type's value expression.
func (a Aggregation) inlineVariable(valueTsx string) models.InlineVariable {
	variable := models.InlineVariable{
		Kind:        "numeric",
		Value:       &models.Tsx{Tsx: valueTsx},
		Aggregation: &models.Tsx{Tsx: fmt.Sprintf("%s($value)", a.Method)},
	}
	if interpolatedMethods[a.Method] {
		variable.Interpolation = &models.Interpolation{
			Kind:     a.InterpolationKind,
			Boundary: models.InterpolationBoundary{Span: a.InterpolationSpan},
		}
	}
	return variable
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
