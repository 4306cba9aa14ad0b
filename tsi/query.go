package tsi

import (
	"context"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/insightfinder/tsi-agent/pkg/models"
	"github.com/insightfinder/tsi-agent/pkg/timetable"
)

// RequestMode selects the query endpoint shape. ModeAuto infers getSeries or
// aggregateSeries from the presence of an aggregation list.
type RequestMode string

const (
	ModeAuto            RequestMode = ""
	ModeGetSeries       RequestMode = "getSeries"
	ModeAggregateSeries RequestMode = "aggregateSeries"
	ModeGetEvents       RequestMode = "getEvents"
)

const (
	// Value expression used for raw series when the type carries none.
	rawValueTsx = "$event.value"

	// Inline variable name for raw series, echoed back as the property name.
	rawVariableName = "tagData"

	// Event queries keep numeric or good-status events only.
	eventsFilterTsx = "($event.value.Double != null) OR ($event.Status.String = 'Good')"

	eventsValueProperty = "value"
)

type Timespan struct {
	From string
	To   string
}

// QuerySpec carries the shared, per-call query parameters. It is immutable
// across the per-series loop.
type QuerySpec struct {
	Timespan     Timespan
	Interval     string // ISO-8601 duration, aggregate mode only
	Aggregations []Aggregation
	Mode         RequestMode
	Filter       string // optional per-series tsx filter, series modes only
	UseWarmStore bool
}

// resolveMode applies the precedence rules: an explicit getEvents request is
// always honored, the other explicit modes must agree with the aggregation
// list, and ModeAuto infers the mode from it.
func (spec *QuerySpec) resolveMode() (RequestMode, error) {
	switch spec.Mode {
	case ModeGetEvents:
		return ModeGetEvents, nil
	case ModeGetSeries:
		if len(spec.Aggregations) > 0 {
			return "", &ValidationError{Reason: "getSeries was requested but an aggregation list was supplied"}
		}
		return ModeGetSeries, nil
	case ModeAggregateSeries:
		if len(spec.Aggregations) == 0 {
			return "", &ValidationError{Reason: "aggregateSeries was requested without an aggregation list"}
		}
		return ModeAggregateSeries, nil
	case ModeAuto:
		if len(spec.Aggregations) > 0 {
			return ModeAggregateSeries, nil
		}
		return ModeGetSeries, nil
	default:
		return "", &ValidationError{Reason: fmt.Sprintf("request mode %q not supported", spec.Mode)}
	}
}

// validate fails fast on caller mistakes, before any network call.
func (spec *QuerySpec) validate() error {
	if spec.Timespan.From == "" || spec.Timespan.To == "" {
		return &ValidationError{Reason: "timespan requires both a start and an end"}
	}
	from, err := dateparse.ParseAny(spec.Timespan.From)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("timespan start %q is not a timestamp", spec.Timespan.From)}
	}
	to, err := dateparse.ParseAny(spec.Timespan.To)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("timespan end %q is not a timestamp", spec.Timespan.To)}
	}
	if from.After(to) {
		return &ValidationError{Reason: "timespan start is after its end"}
	}

	mode, err := spec.resolveMode()
	if err != nil {
		return err
	}
	if mode == ModeAggregateSeries {
		if spec.Interval == "" {
			return &ValidationError{Reason: "aggregate queries require a sampling interval"}
		}
		if err := validateAggregations(spec.Aggregations); err != nil {
			return err
		}
	}
	return nil
}

// buildPayload constructs the request body for one series, plus the ordered
// property names the server will echo back.
func (spec *QuerySpec) buildPayload(mode RequestMode, seriesID, valueTsx string, maxRows int) (models.QueryRequest, []string) {
	span := models.SearchSpan{From: spec.Timespan.From, To: spec.Timespan.To}
	var filter *models.Tsx
	if spec.Filter != "" {
		filter = &models.Tsx{Tsx: spec.Filter}
	}

	switch mode {
	case ModeGetEvents:
		return models.QueryRequest{
			GetEvents: &models.EventsQuery{
				TimeSeriesID: []string{seriesID},
				SearchSpan:   span,
				Filter:       &models.Tsx{Tsx: eventsFilterTsx},
				ProjectedProperties: []models.ProjectedProperty{
					{Name: eventsValueProperty, Type: "Double"},
				},
				Take: maxRows,
			},
		}, []string{eventsValueProperty}

	case ModeAggregateSeries:
		variables := make(map[string]models.InlineVariable, len(spec.Aggregations))
		projected := make([]string, 0, len(spec.Aggregations))
		for _, agg := range spec.Aggregations {
			name := agg.variableName()
			variables[name] = agg.inlineVariable(valueTsx)
			projected = append(projected, name)
		}
		return models.QueryRequest{
			AggregateSeries: &models.SeriesQuery{
				TimeSeriesID:       []string{seriesID},
				SearchSpan:         span,
				Filter:             filter,
				Interval:           spec.Interval,
				InlineVariables:    variables,
				ProjectedVariables: projected,
				Take:               maxRows,
			},
		}, projected

	default: // ModeGetSeries
		return models.QueryRequest{
			GetSeries: &models.SeriesQuery{
				TimeSeriesID: []string{seriesID},
				SearchSpan:   span,
				Filter:       filter,
				InlineVariables: map[string]models.InlineVariable{
					rawVariableName: {
						Kind:  "numeric",
						Value: &models.Tsx{Tsx: valueTsx},
					},
				},
				ProjectedVariables: []string{rawVariableName},
				Take:               maxRows,
			},
		}, []string{rawVariableName}
	}
}

// GetDataByName queries data for exact instance names. Column labels are the
// names themselves.
func (s *Service) GetDataByName(ctx context.Context, names []string, spec QuerySpec) (*timetable.Table, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	catalog, err := s.GetInstances(ctx)
	if err != nil {
		return nil, err
	}

	return s.getData(ctx, catalog.IDsByName(names), catalog.TypeIDsByName(names), names, spec)
}

// GetDataByDescription queries data for exact instance descriptions, with
// caller-chosen column labels. Labels default to the descriptions.
func (s *Service) GetDataByDescription(ctx context.Context, descriptions, labels []string, spec QuerySpec) (*timetable.Table, error) {
	if len(labels) == 0 {
		labels = descriptions
	}
	if len(labels) != len(descriptions) {
		return nil, &ValidationError{Reason: fmt.Sprintf(
			"%d labels supplied for %d descriptions", len(labels), len(descriptions))}
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}

	catalog, err := s.GetInstances(ctx)
	if err != nil {
		return nil, err
	}

	return s.getData(ctx, catalog.IDsByDescription(descriptions), catalog.TypeIDsByDescription(descriptions), labels, spec)
}

// GetDataByID queries data for raw series ids. Column labels are the ids.
func (s *Service) GetDataByID(ctx context.Context, ids []string, spec QuerySpec) (*timetable.Table, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	catalog, err := s.GetInstances(ctx)
	if err != nil {
		return nil, err
	}

	resolved := lo.Map(ids, func(id string, _ int) *string {
		if id == "" {
			return nil
		}
		return &id
	})

	return s.getData(ctx, resolved, catalog.TypeIDsByID(ids), ids, spec)
}

// GetDataByAssets queries data for every series whose name contains the
// asset string.
func (s *Service) GetDataByAssets(ctx context.Context, asset string, spec QuerySpec) (*timetable.Table, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	catalog, err := s.GetInstances(ctx)
	if err != nil {
		return nil, err
	}

	ids := catalog.IDsByAsset(asset)
	if len(ids) == 0 {
		logrus.Errorf("No series found for asset: %s", asset)
		return nil, nil
	}

	resolved := lo.Map(ids, func(id string, _ int) *string { return &id })
	return s.getData(ctx, resolved, catalog.TypeIDsByID(ids), ids, spec)
}

// getData runs one query per resolved series, in caller order, folding each
// drained result into the running table. Unresolved or empty series are
// logged and skipped; transport and server errors abort the whole batch.
func (s *Service) getData(ctx context.Context, ids, typeIDs []*string, labels []string, spec QuerySpec) (*timetable.Table, error) {
	mode, err := spec.resolveMode()
	if err != nil {
		return nil, err
	}

	var expressions map[string]string
	if mode != ModeGetEvents {
		expressions, err = s.TypeValueExpressions(ctx)
		if err != nil {
			return nil, err
		}
	}

	tolerance := time.Duration(s.Config.JoinTolerance) * time.Second

	var table *timetable.Table
	for i := range ids {
		label := labels[i]
		if ids[i] == nil {
			logrus.Errorf("No such tag: %s", label)
			continue
		}

		valueTsx := ""
		if mode != ModeGetEvents {
			if typeIDs[i] == nil {
				logrus.Errorf("Type not defined for %s", label)
				continue
			}
			valueTsx = expressions[*typeIDs[i]]
			if valueTsx == "" {
				if mode == ModeGetSeries {
					valueTsx = rawValueTsx
				} else {
					logrus.Errorf("No value expression for type %s, skipping tag: %s", *typeIDs[i], label)
					continue
				}
			}
		}

		payload, projected := spec.buildPayload(mode, *ids[i], valueTsx, s.Config.MaxRows)
		timestamps, properties, err := s.executeQuery(ctx, payload, spec.UseWarmStore)
		if err != nil {
			return nil, err
		}
		if len(timestamps) == 0 {
			logrus.Errorf("No data in search span for tag: %s", label)
			continue
		}

		columns, err := seriesColumns(label, spec.Aggregations, projected, properties, len(timestamps))
		if err != nil {
			return nil, err
		}
		parsed, err := timetable.ParseTimestamps(timestamps)
		if err != nil {
			return nil, fmt.Errorf("tsi: response for tag %s: %w", label, err)
		}

		if table == nil {
			// First successfully loaded series seeds the table, whatever its
			// position in the input list.
			table, err = timetable.New(parsed, columns...)
			if err != nil {
				return nil, err
			}
			if mode != ModeAggregateSeries {
				table.SortByTimestamp()
			}
		} else if mode == ModeAggregateSeries {
			// Server-side interval binning puts every series on the same
			// grid for a fixed interval and search span.
			if err := table.AppendAligned(columns...); err != nil {
				return nil, err
			}
		} else {
			next, err := timetable.New(parsed, columns...)
			if err != nil {
				return nil, err
			}
			next.SortByTimestamp()
			table.MergeNearest(next, tolerance)
		}

		logrus.Infof("Loaded data for tag: %s", label)
	}

	return table, nil
}

// seriesColumns converts the drained properties into table columns named
// after the series label, suffixed with the method when more than one
// aggregation was requested.
func seriesColumns(label string, aggs []Aggregation, projected []string, properties []models.PropertyValues, rows int) ([]timetable.Column, error) {
	columns := make([]timetable.Column, 0, len(projected))
	for k, name := range projected {
		property, ok := findProperty(properties, name, k)
		if !ok {
			return nil, &QueryError{Message: fmt.Sprintf("response for tag %s is missing property %s", label, name)}
		}

		columnName := label
		if len(aggs) > 1 {
			columnName = label + "/" + aggs[k].Method
		}

		values := make([]float64, rows)
		for j := range values {
			if j < len(property.Values) && property.Values[j] != nil {
				values[j] = *property.Values[j]
			} else {
				values[j] = timetable.Missing()
			}
		}
		columns = append(columns, timetable.Column{Name: columnName, Values: values})
	}
	return columns, nil
}

// findProperty matches by name first and falls back to position, since the
// server echoes properties in projectedVariables order.
func findProperty(properties []models.PropertyValues, name string, index int) (models.PropertyValues, bool) {
	for _, p := range properties {
		if p.Name == name {
			return p, true
		}
	}
	if index < len(properties) {
		return properties[index], true
	}
	return models.PropertyValues{}, false
}
