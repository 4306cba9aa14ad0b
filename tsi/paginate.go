package tsi

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/insightfinder/tsi-agent/pkg/models"
)

const storeNotSupportedCode = "TimeSeriesQueryNotSupported"

// executeQuery posts one query and drains its continuation pages, returning
// the accumulated timestamps and property value columns.
func (s *Service) executeQuery(ctx context.Context, body models.QueryRequest, useWarmStore bool) ([]string, []models.PropertyValues, error) {
	envURL, err := s.environmentURL(ctx)
	if err != nil {
		return nil, nil, err
	}

	var (
		timestamps []string
		properties []models.PropertyValues
	)

	continuation := ""
	pages := 0
	for {
		rb, err := s.newRequest(ctx, envURL, "/timeseries/query", s.params(&useWarmStore))
		if err != nil {
			return nil, nil, err
		}
		if continuation != "" {
			rb = rb.Header("x-ms-continuation", continuation)
		}

		var page models.QueryResponse
		if err := rb.BodyJSON(body).ToJSON(&page).Post().Fetch(ctx); err != nil {
			return nil, nil, fmt.Errorf("tsi: query request failed: %w", err)
		}

		if page.Error != nil {
			if inner := page.Error.InnerError; inner != nil && inner.Code == storeNotSupportedCode {
				return nil, nil, &StoreError{Environment: s.Config.Environment}
			}
			return nil, nil, &QueryError{Code: page.Error.Code, Message: page.Error.Message}
		}

		timestamps = append(timestamps, page.Timestamps...)
		if properties == nil {
			properties = make([]models.PropertyValues, len(page.Properties))
			for i, p := range page.Properties {
				properties[i] = models.PropertyValues{Name: p.Name, Type: p.Type}
			}
		} else if len(page.Properties) != len(properties) {
			return nil, nil, &QueryError{Message: fmt.Sprintf(
				"continuation page carried %d properties, expected %d", len(page.Properties), len(properties))}
		}
		for i, p := range page.Properties {
			properties[i].Values = append(properties[i].Values, p.Values...)
		}

		pages++
		if page.ContinuationToken == "" {
			break
		}
		continuation = page.ContinuationToken
	}

	logrus.Debugf("Query returned %d rows over %d pages", len(timestamps), pages)
	return timestamps, properties, nil
}
