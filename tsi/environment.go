package tsi

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/insightfinder/tsi-agent/pkg/models"
)

// metadataCtx bounds environment/instance/type lookups, which should answer
// quickly compared to data queries.
func (s *Service) metadataCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(s.Config.AuthTimeout)*time.Second)
}

// EnvironmentID resolves the configured environment display name to its id.
// The id is cached for the lifetime of the service.
func (s *Service) EnvironmentID(ctx context.Context) (string, error) {
	s.envMutex.Lock()
	defer s.envMutex.Unlock()

	if s.environmentID != "" {
		return s.environmentID, nil
	}

	rb, err := s.newRequest(ctx, s.apiURL(), "/environments", s.params(nil))
	if err != nil {
		return "", err
	}

	mctx, cancel := s.metadataCtx(ctx)
	defer cancel()

	var resp models.EnvironmentsResponse
	if err := rb.ToJSON(&resp).Fetch(mctx); err != nil {
		return "", fmt.Errorf("tsi: environments request failed: %w", err)
	}

	for _, env := range resp.Environments {
		if env.DisplayName == s.Config.Environment {
			s.environmentID = env.EnvironmentID
			logrus.Debugf("Resolved environment %s to id %s", s.Config.Environment, env.EnvironmentID)
			return s.environmentID, nil
		}
	}

	return "", &EnvironmentError{Environment: s.Config.Environment}
}

// GetEnvironmentAvailability reports the time range and event distribution
// the environment has data for.
func (s *Service) GetEnvironmentAvailability(ctx context.Context) (*models.Availability, error) {
	envURL, err := s.environmentURL(ctx)
	if err != nil {
		return nil, err
	}

	rb, err := s.newRequest(ctx, envURL, "/availability", s.params(nil))
	if err != nil {
		return nil, err
	}

	mctx, cancel := s.metadataCtx(ctx)
	defer cancel()

	var resp models.AvailabilityResponse
	if err := rb.ToJSON(&resp).Fetch(mctx); err != nil {
		return nil, fmt.Errorf("tsi: availability request failed: %w", err)
	}

	return resp.Availability, nil
}
