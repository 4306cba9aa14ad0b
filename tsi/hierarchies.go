package tsi

import (
	"context"
	"fmt"

	"github.com/insightfinder/tsi-agent/pkg/models"
)

// GetHierarchies lists the environment's hierarchies with their instance
// field names.
func (s *Service) GetHierarchies(ctx context.Context) (*models.HierarchiesResponse, error) {
	envURL, err := s.environmentURL(ctx)
	if err != nil {
		return nil, err
	}

	rb, err := s.newRequest(ctx, envURL, "/timeseries/hierarchies", s.params(nil))
	if err != nil {
		return nil, err
	}

	mctx, cancel := s.metadataCtx(ctx)
	defer cancel()

	var resp models.HierarchiesResponse
	if err := rb.ToJSON(&resp).Fetch(mctx); err != nil {
		return nil, fmt.Errorf("tsi: hierarchies request failed: %w", err)
	}
	return &resp, nil
}
