package tsi

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/insightfinder/tsi-agent/pkg/models"
)

// GetInstances returns the full instance catalog as a snapshot, draining
// continuation pages until the server reports completion.
func (s *Service) GetInstances(ctx context.Context) (*Catalog, error) {
	envURL, err := s.environmentURL(ctx)
	if err != nil {
		return nil, err
	}

	var instances []models.Instance
	continuation := ""
	for {
		rb, err := s.newRequest(ctx, envURL, "/timeseries/instances/", s.params(nil))
		if err != nil {
			return nil, err
		}
		if continuation != "" {
			rb = rb.Header("x-ms-continuation", continuation)
		}

		mctx, cancel := s.metadataCtx(ctx)
		var page models.InstancesResponse
		err = rb.ToJSON(&page).Fetch(mctx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("tsi: instances request failed: %w", err)
		}

		instances = append(instances, page.Instances...)
		if page.ContinuationToken == "" {
			break
		}
		continuation = page.ContinuationToken
	}

	logrus.Debugf("Fetched %d time series instances", len(instances))
	return NewCatalog(instances), nil
}

// WriteInstances creates or replaces catalog instances via the batch
// endpoint.
func (s *Service) WriteInstances(ctx context.Context, instances []models.Instance) (*models.InstancesBatchResponse, error) {
	body := models.InstancesBatchRequest{Put: instances}
	return s.instancesBatch(ctx, body)
}

// DeleteInstances removes the given series ids from the catalog. Entries
// that are not well-formed GUIDs are skipped.
func (s *Service) DeleteInstances(ctx context.Context, ids []string) (*models.InstancesBatchResponse, error) {
	batch := make([][]string, 0, len(ids))
	for _, id := range ids {
		if len(id) < 36 {
			logrus.Warnf("Skipping malformed time series id: %q", id)
			continue
		}
		batch = append(batch, []string{id})
	}

	body := models.InstancesBatchRequest{Delete: &models.TimeSeriesIDBatch{TimeSeriesIDs: batch}}
	return s.instancesBatch(ctx, body)
}

func (s *Service) instancesBatch(ctx context.Context, body models.InstancesBatchRequest) (*models.InstancesBatchResponse, error) {
	envURL, err := s.environmentURL(ctx)
	if err != nil {
		return nil, err
	}

	rb, err := s.newRequest(ctx, envURL, "/timeseries/instances/$batch", s.params(nil))
	if err != nil {
		return nil, err
	}

	mctx, cancel := s.metadataCtx(ctx)
	defer cancel()

	var resp models.InstancesBatchResponse
	if err := rb.BodyJSON(body).ToJSON(&resp).Post().Fetch(mctx); err != nil {
		return nil, fmt.Errorf("tsi: instances batch request failed: %w", err)
	}
	return &resp, nil
}
