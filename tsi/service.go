package tsi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/google/go-querystring/query"
	"github.com/sirupsen/logrus"

	config "github.com/insightfinder/tsi-agent/configs"
	"github.com/insightfinder/tsi-agent/pkg/models"
)

const (
	defaultAPIURL = "https://api.timeseries.azure.com"
	authResource  = "https://api.timeseries.azure.com/"

	// Renew the cached token slightly before Azure AD expires it.
	tokenRenewalMargin = time.Minute
)

type Service struct {
	Config     config.TSIConfig
	HttpClient *http.Client

	tokenMutex  sync.Mutex
	token       string
	tokenExpiry time.Time

	envMutex      sync.Mutex
	environmentID string
}

func NewService(cfg config.TSIConfig) *Service {
	client := &http.Client{
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	}

	return &Service{
		Config:     cfg,
		HttpClient: client,
	}
}

func (s *Service) authURL() string {
	if s.Config.AuthURL != "" {
		return s.Config.AuthURL
	}
	return fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/token", s.Config.TenantID)
}

func (s *Service) apiURL() string {
	if s.Config.APIURL != "" {
		return s.Config.APIURL
	}
	return defaultAPIURL
}

// environmentURL returns the per-environment endpoint, resolving the
// environment id on first use unless an override is configured.
func (s *Service) environmentURL(ctx context.Context) (string, error) {
	if s.Config.EnvironmentURL != "" {
		return s.Config.EnvironmentURL, nil
	}
	id, err := s.EnvironmentID(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.env.timeseries.azure.com", id), nil
}

// getToken returns a cached bearer credential, refreshing it when expired.
func (s *Service) getToken(ctx context.Context) (string, error) {
	s.tokenMutex.Lock()
	defer s.tokenMutex.Unlock()

	if s.token != "" && time.Until(s.tokenExpiry) > tokenRenewalMargin {
		return s.token, nil
	}

	logrus.Debug("Requesting new TSI authorization token")

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.Config.ClientID)
	form.Set("client_secret", s.Config.ClientSecret)
	form.Set("resource", authResource)

	authCtx, cancel := context.WithTimeout(ctx, time.Duration(s.Config.AuthTimeout)*time.Second)
	defer cancel()

	var tokenResp models.OAuthTokenResponse
	err := requests.URL(s.authURL()).
		Client(s.HttpClient).
		Header("cache-control", "no-cache").
		BodyForm(form).
		ToJSON(&tokenResp).
		Post().
		Fetch(authCtx)
	if err != nil {
		if requests.HasStatusErr(err, http.StatusUnauthorized) {
			logrus.Error("Authentication with the TSI api was unsuccessful, check the client secret")
		}
		return "", fmt.Errorf("tsi: authentication request failed: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("tsi: authentication response carried no access token")
	}

	expires := 3600
	if tokenResp.ExpiresIn != "" {
		if parsed, err := strconv.Atoi(tokenResp.ExpiresIn); err == nil {
			expires = parsed
		}
	}

	s.token = tokenResp.TokenType + " " + tokenResp.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(expires) * time.Second)
	logrus.Debugf("TSI token renewed, valid for %d seconds", expires)

	return s.token, nil
}

// Authenticate verifies the configured credentials by fetching a token.
func (s *Service) Authenticate(ctx context.Context) error {
	_, err := s.getToken(ctx)
	return err
}

type apiParams struct {
	APIVersion string `url:"api-version"`
	StoreType  string `url:"storeType,omitempty"`
}

// params builds the common querystring. A nil useWarmStore omits the
// storeType parameter entirely.
func (s *Service) params(useWarmStore *bool) url.Values {
	p := apiParams{APIVersion: s.Config.APIVersion}
	if useWarmStore != nil {
		if *useWarmStore {
			p.StoreType = "WarmStore"
		} else {
			p.StoreType = "ColdStore"
		}
	}
	values, err := query.Values(p)
	if err != nil {
		logrus.Errorf("Failed to build query parameters: %v", err)
		return url.Values{"api-version": []string{s.Config.APIVersion}}
	}
	return values
}

// newRequest prepares an authorized request builder with the headers every
// TSI api call carries.
func (s *Service) newRequest(ctx context.Context, baseURL, path string, params url.Values) (*requests.Builder, error) {
	token, err := s.getToken(ctx)
	if err != nil {
		return nil, err
	}
	rb := requests.URL(baseURL).
		Path(path).
		Client(s.HttpClient).
		Header("x-ms-client-application-name", s.Config.ApplicationName).
		Header("Authorization", token).
		Header("cache-control", "no-cache").
		Params(params)
	return rb, nil
}
