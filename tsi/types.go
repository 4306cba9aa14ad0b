package tsi

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/insightfinder/tsi-agent/pkg/models"
)

// GetTypes lists all time series types in the environment.
func (s *Service) GetTypes(ctx context.Context) (*models.TypesResponse, error) {
	envURL, err := s.environmentURL(ctx)
	if err != nil {
		return nil, err
	}

	rb, err := s.newRequest(ctx, envURL, "/timeseries/types", s.params(nil))
	if err != nil {
		return nil, err
	}

	mctx, cancel := s.metadataCtx(ctx)
	defer cancel()

	var resp models.TypesResponse
	if err := rb.ToJSON(&resp).Fetch(mctx); err != nil {
		return nil, fmt.Errorf("tsi: types request failed: %w", err)
	}
	return &resp, nil
}

// TypeValueExpressions maps each type id to its "Value" variable's tsx
// expression. Types without an extractable expression are logged and left
// out, which later marks series of that type as unresolved.
func (s *Service) TypeValueExpressions(ctx context.Context) (map[string]string, error) {
	resp, err := s.GetTypes(ctx)
	if err != nil {
		return nil, err
	}

	expressions := make(map[string]string, len(resp.Types))
	for _, t := range resp.Types {
		value, ok := t.Variables["Value"]
		if !ok || value.Value == nil || value.Value.Tsx == "" {
			logrus.Errorf("Value expression for type %s cannot be extracted", t.ID)
			continue
		}
		expressions[t.ID] = value.Value.Tsx
	}
	return expressions, nil
}
