package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
tsi:
  tenant_id: test-tenant
  client_id: test-client
  client_secret: test-secret
  application_name: tsi-agent
  environment: Test Environment
query:
  series:
    - name: F1W7.GS1
insightfinder:
  license_key: test-license
  project_name: tsi-metrics
`

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.Agent.LogLevel)
	assert.Equal(t, "2018-11-01-preview", cfg.TSI.APIVersion)
	assert.Equal(t, 10, cfg.TSI.AuthTimeout)
	assert.Equal(t, 250000, cfg.TSI.MaxRows)
	assert.Equal(t, 30, cfg.TSI.JoinTolerance)
	assert.Equal(t, "PT1M", cfg.Query.Interval)
	assert.Equal(t, 600, cfg.Query.Lookback)
	assert.Equal(t, "Metric", cfg.InsightFinder.ProjectType)
	assert.Equal(t, 300, cfg.InsightFinder.SamplingInterval)
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	content := minimalConfig + `
agent:
  log_level: DEBUG
`
	cfg, err := LoadConfig(writeConfigFile(t, content))
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Agent.LogLevel)
}

func TestLoadConfigRequiresCredentials(t *testing.T) {
	content := `
tsi:
  tenant_id: test-tenant
  client_id: test-client
  application_name: tsi-agent
  environment: Test Environment
query:
  series:
    - name: F1W7.GS1
insightfinder:
  license_key: test-license
  project_name: tsi-metrics
`
	_, err := LoadConfig(writeConfigFile(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client_secret")
}

func TestLoadConfigRequiresSeries(t *testing.T) {
	content := `
tsi:
  tenant_id: test-tenant
  client_id: test-client
  client_secret: test-secret
  application_name: tsi-agent
  environment: Test Environment
insightfinder:
  license_key: test-license
  project_name: tsi-metrics
`
	_, err := LoadConfig(writeConfigFile(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "series")
}

func TestLoadConfigAcceptsEnvironmentURLOverride(t *testing.T) {
	content := `
tsi:
  tenant_id: test-tenant
  client_id: test-client
  client_secret: test-secret
  application_name: tsi-agent
  environment_url: https://example.env.timeseries.azure.com
query:
  series:
    - name: F1W7.GS1
insightfinder:
  license_key: test-license
  project_name: tsi-metrics
`
	_, err := LoadConfig(writeConfigFile(t, content))
	require.NoError(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
