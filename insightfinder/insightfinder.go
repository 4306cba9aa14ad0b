package insightfinder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/google/go-querystring/query"
	"github.com/sirupsen/logrus"

	config "github.com/insightfinder/tsi-agent/configs"
	"github.com/insightfinder/tsi-agent/pkg/models"
)

const (
	METRIC_DATA_API     = "/api/v2/metric-data-receive"
	PROJECT_ENDPOINT    = "/api/v1/check-and-add-custom-project"
	MAX_PACKET_SIZE     = 10000000 // 10MB
	HTTP_RETRY_TIMES    = 3
	HTTP_RETRY_INTERVAL = 5 // seconds
)

func NewService(config config.InsightFinderConfig) *Service {
	client := &http.Client{
		Timeout: 180 * time.Second,
	}

	service := &Service{
		config:      config,
		httpClient:  client,
		ProjectName: config.ProjectName,
		SystemName:  config.SystemName,
		ProjectType: "Metric",
		Container:   config.IsContainer,
	}

	service.Validate()

	return service
}

// Validate configuration and set defaults
func (s *Service) Validate() bool {
	logrus.Info("Validating InsightFinder configuration...")

	if s.config.ServerURL == "" {
		logrus.Error("ServerURL is required")
		return false
	}
	if s.config.UserName == "" {
		logrus.Error("UserName is required")
		return false
	}
	if s.config.LicenseKey == "" {
		logrus.Error("LicenseKey is required")
		return false
	}
	if s.config.ProjectName == "" {
		logrus.Error("ProjectName is required")
		return false
	}

	if s.SystemName == "" {
		s.SystemName = s.ProjectName
		logrus.Warnf("SystemName not set, defaulting to ProjectName: %s", s.ProjectName)
	}

	if s.CloudType == "" {
		if s.config.CloudType != "" {
			s.CloudType = s.config.CloudType
		} else {
			s.CloudType = "Azure"
			logrus.Warn("CloudType not set, defaulting to Azure")
		}
	}

	if s.InstanceType == "" {
		if s.config.InstanceType != "" {
			s.InstanceType = s.config.InstanceType
		} else {
			s.InstanceType = "OnPremise"
			logrus.Warn("InstanceType not set, defaulting to OnPremise")
		}
	}

	if s.config.ProjectType != "" {
		s.ProjectType = s.config.ProjectType
	}
	s.DataType = s.ProjectType

	if s.config.SamplingInterval > 0 {
		s.SamplingInterval = uint(s.config.SamplingInterval)
	} else {
		s.SamplingInterval = 5 * 60 // 5 minutes default
	}

	if s.Container {
		s.InsightAgentType = "containerStreaming"
	} else {
		s.InsightAgentType = "TSIAgent"
	}

	logrus.Infof("InsightFinder configuration validated successfully:")
	logrus.Infof("  Project: %s", s.ProjectName)
	logrus.Infof("  System: %s", s.SystemName)
	logrus.Infof("  CloudType: %s", s.CloudType)
	logrus.Infof("  AgentType: %s", s.InsightAgentType)
	logrus.Infof("  SamplingInterval: %d seconds", s.SamplingInterval)

	return true
}

// Create project if it doesn't exist
func (s *Service) CreateProjectIfNotExist() bool {
	if !s.IsProjectExist() {
		return s.CreateProject()
	}
	return true
}

// Check if project exists
func (s *Service) IsProjectExist() bool {
	logrus.Infof("Checking if project '%s' exists in InsightFinder", s.ProjectName)

	form := url.Values{}
	form.Add("operation", "check")
	form.Add("userName", s.config.UserName)
	form.Add("licenseKey", s.config.LicenseKey)
	form.Add("projectName", s.ProjectName)
	form.Add("systemName", s.SystemName)

	var checkResponse CheckAndAddCustomProjectResponse
	err := requests.URL(s.config.ServerURL).
		Path(PROJECT_ENDPOINT).
		Client(s.httpClient).
		BodyForm(form).
		ToJSON(&checkResponse).
		Post().
		Fetch(context.Background())
	if err != nil {
		logrus.Errorf("Failed to check project existence: %v", err)
		return false
	}

	if checkResponse.IsSuccess {
		if checkResponse.IsProjectExist {
			logrus.Infof("Project '%s' exists in InsightFinder", s.ProjectName)
			return true
		}
		logrus.Infof("Project '%s' does not exist in InsightFinder", s.ProjectName)
		return false
	}

	logrus.Errorf("Project check failed: %s", checkResponse.Message)
	return false
}

// Create new project
func (s *Service) CreateProject() bool {
	logrus.Infof("Creating project '%s' in InsightFinder", s.ProjectName)

	request := CheckAndAddCustomProjectRequest{
		Operation:        "create",
		UserName:         s.config.UserName,
		LicenseKey:       s.config.LicenseKey,
		ProjectName:      s.ProjectName,
		SystemName:       s.SystemName,
		InstanceType:     s.InstanceType,
		ProjectCloudType: s.CloudType,
		DataType:         s.DataType,
		InsightAgentType: s.InsightAgentType,
		SamplingInterval: int(s.SamplingInterval),
	}
	requestForm, err := query.Values(request)
	if err != nil {
		logrus.Errorf("Error building request form to create project: %v", err)
		return false
	}

	var resultStr string
	err = requests.URL(s.config.ServerURL).
		Path(PROJECT_ENDPOINT).
		Client(s.httpClient).
		Header("agent-type", "Stream").
		BodyJSON(request).
		Params(requestForm).
		ToString(&resultStr).
		Post().
		Fetch(context.Background())
	if err != nil {
		logrus.Errorf("Failed to create project: %v", err)
		return false
	}

	logrus.Infof("Project '%s' created successfully in InsightFinder", s.ProjectName)
	return true
}

// SendMetrics groups metric rows by instance and timestamp and posts them to
// the v2 metric ingestion API.
func (s *Service) SendMetrics(metrics []models.MetricData) error {
	if len(metrics) == 0 {
		return nil
	}

	logrus.Infof("Sending %d metric rows to InsightFinder using v2 API", len(metrics))

	instanceDataMap := make(map[string]InstanceData)
	var minTimestamp, maxTimestamp int64

	for i, metric := range metrics {
		timestamp := metric.Timestamp
		if timestamp < 1e12 {
			// Epoch seconds, the API expects milliseconds.
			timestamp = timestamp * 1000
		}

		if i == 0 {
			minTimestamp = timestamp
			maxTimestamp = timestamp
		} else {
			if timestamp < minTimestamp {
				minTimestamp = timestamp
			}
			if timestamp > maxTimestamp {
				maxTimestamp = timestamp
			}
		}

		instanceData, exists := instanceDataMap[metric.InstanceName]
		if !exists {
			componentName := metric.ComponentName
			if componentName == "" {
				componentName = metric.InstanceName
			}
			instanceData = InstanceData{
				InstanceName:       metric.InstanceName,
				ComponentName:      componentName,
				DataInTimestampMap: make(map[int64]DataInTimestamp),
			}
		}

		metricDataPoints := make([]MetricDataPoint, 0, len(metric.Data))
		dataInTimestamp := DataInTimestamp{
			TimeStamp:        timestamp,
			MetricDataPoints: &metricDataPoints,
		}

		for metricName, value := range metric.Data {
			if floatValue, ok := convertToFloat64(value); ok {
				*dataInTimestamp.MetricDataPoints = append(*dataInTimestamp.MetricDataPoints, MetricDataPoint{
					MetricName: metricName,
					Value:      floatValue,
				})
			} else {
				logrus.Debugf("Skipping non-numeric metric %s: %v (type: %T)", metricName, value, value)
			}
		}

		instanceData.DataInTimestampMap[timestamp] = dataInTimestamp
		instanceDataMap[metric.InstanceName] = instanceData
	}

	payload := IFMetricPostRequestPayload{
		LicenseKey: s.config.LicenseKey,
		UserName:   s.config.UserName,
		Data: MetricDataReceivePayload{
			ProjectName:      s.ProjectName,
			UserName:         s.config.UserName,
			SystemName:       s.SystemName,
			InstanceDataMap:  instanceDataMap,
			MinTimestamp:     minTimestamp,
			MaxTimestamp:     maxTimestamp,
			InsightAgentType: s.InsightAgentType,
			SamplingInterval: strconv.Itoa(int(s.SamplingInterval)),
			CloudType:        s.CloudType,
		},
	}

	return s.sendMetricPayload(payload)
}

// Send metric payload to InsightFinder v2 API with retry
func (s *Service) sendMetricPayload(payload IFMetricPostRequestPayload) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics payload: %v", err)
	}

	if len(jsonPayload) > MAX_PACKET_SIZE {
		return fmt.Errorf("payload size (%d bytes) exceeds maximum allowed (%d bytes)", len(jsonPayload), MAX_PACKET_SIZE)
	}

	logrus.Debugf("Sending %d bytes to InsightFinder v2 API", len(jsonPayload))

	var lastErr error
	for attempt := 1; attempt <= HTTP_RETRY_TIMES; attempt++ {
		err := requests.URL(s.config.ServerURL).
			Path(METRIC_DATA_API).
			Client(s.httpClient).
			ContentType("application/json").
			BodyBytes(jsonPayload).
			Post().
			Fetch(context.Background())
		if err == nil {
			logrus.Infof("Successfully sent metrics to InsightFinder v2 API (instances: %d)", len(payload.Data.InstanceDataMap))
			return nil
		}

		lastErr = err
		logrus.Warnf("Attempt %d/%d failed: %v", attempt, HTTP_RETRY_TIMES, err)
		if attempt < HTTP_RETRY_TIMES {
			time.Sleep(time.Duration(HTTP_RETRY_INTERVAL) * time.Second)
		}
	}

	return fmt.Errorf("failed to send metrics after %d attempts: %v", HTTP_RETRY_TIMES, lastErr)
}

// Get configuration
func (s *Service) GetConfig() config.InsightFinderConfig {
	return s.config
}
