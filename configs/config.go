package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func LoadConfig(configPath string) (*Config, error) {
	fileData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(fileData, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(config *Config) {
	if config.Agent.LogLevel == "" {
		config.Agent.LogLevel = "INFO"
	}
	if config.Agent.Timezone == "" {
		config.Agent.Timezone = "UTC"
	}
	if config.TSI.APIVersion == "" {
		config.TSI.APIVersion = "2018-11-01-preview"
	}
	if config.TSI.AuthTimeout == 0 {
		config.TSI.AuthTimeout = 10
	}
	if config.TSI.MaxRows == 0 {
		config.TSI.MaxRows = 250000
	}
	if config.TSI.JoinTolerance == 0 {
		config.TSI.JoinTolerance = 30
	}
	if config.Query.Interval == "" {
		config.Query.Interval = "PT1M"
	}
	if config.Query.Lookback == 0 {
		config.Query.Lookback = 600
	}
	if config.InsightFinder.ProjectType == "" {
		config.InsightFinder.ProjectType = "Metric"
	}
	if config.InsightFinder.ServerURL == "" {
		config.InsightFinder.ServerURL = "https://app.insightfinder.com"
	}
	if config.InsightFinder.SamplingInterval == 0 {
		config.InsightFinder.SamplingInterval = 300
	}
}

func validateConfig(config *Config) error {
	if config.TSI.TenantID == "" {
		return fmt.Errorf("tsi tenant_id is required")
	}
	if config.TSI.ClientID == "" {
		return fmt.Errorf("tsi client_id is required")
	}
	if config.TSI.ClientSecret == "" {
		return fmt.Errorf("tsi client_secret is required")
	}
	if config.TSI.ApplicationName == "" {
		return fmt.Errorf("tsi application_name is required")
	}
	if config.TSI.Environment == "" && config.TSI.EnvironmentURL == "" {
		return fmt.Errorf("tsi environment is required")
	}
	if len(config.Query.Series) == 0 {
		return fmt.Errorf("query series list is required")
	}
	if config.InsightFinder.LicenseKey == "" {
		return fmt.Errorf("insightfinder license_key is required")
	}
	if config.InsightFinder.ProjectName == "" {
		return fmt.Errorf("insightfinder project_name is required")
	}
	return nil
}
