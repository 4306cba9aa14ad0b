package worker

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/insightfinder/tsi-agent/configs"
	"github.com/insightfinder/tsi-agent/insightfinder"
	"github.com/insightfinder/tsi-agent/pkg/models"
	"github.com/insightfinder/tsi-agent/pkg/timetable"
	"github.com/insightfinder/tsi-agent/tsi"
)

const collectionTimeout = 10 * time.Minute

type Worker struct {
	config               *config.Config
	tsiService           *tsi.Service
	insightFinderService *insightfinder.Service
}

func NewWorker(config *config.Config, tsiService *tsi.Service, ifService *insightfinder.Service) *Worker {
	return &Worker{
		config:               config,
		tsiService:           tsiService,
		insightFinderService: ifService,
	}
}

func (w *Worker) Start(quit <-chan os.Signal) {
	logrus.Info("Initializing InsightFinder connection...")

	if !w.insightFinderService.CreateProjectIfNotExist() {
		logrus.Fatal("Failed to create/verify InsightFinder project")
		return
	}

	logrus.Info("InsightFinder connection established successfully")

	samplingInterval := time.Duration(w.config.InsightFinder.SamplingInterval) * time.Second
	ticker := time.NewTicker(samplingInterval)
	defer ticker.Stop()

	logrus.Infof("Starting data collection with %d second intervals", w.config.InsightFinder.SamplingInterval)

	w.collectAndSend()

	for {
		select {
		case <-ticker.C:
			w.collectAndSend()
		case <-quit:
			logrus.Info("Worker received shutdown signal")
			return
		}
	}
}

// collectAndSend runs one collection cycle: query the lookback window from
// TSI and forward the resulting rows to InsightFinder.
func (w *Worker) collectAndSend() {
	logrus.Info("Starting data collection cycle")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), collectionTimeout)
	defer cancel()

	now := time.Now().UTC()
	lookback := time.Duration(w.config.Query.Lookback) * time.Second

	spec := tsi.QuerySpec{
		Timespan: tsi.Timespan{
			From: now.Add(-lookback).Format(time.RFC3339),
			To:   now.Format(time.RFC3339),
		},
		Interval:     w.config.Query.Interval,
		Aggregations: w.aggregations(),
		UseWarmStore: w.config.Query.UseWarmStore,
	}

	names := make([]string, len(w.config.Query.Series))
	labels := make(map[string]string, len(w.config.Query.Series))
	for i, series := range w.config.Query.Series {
		names[i] = series.Name
		if series.Label != "" {
			labels[series.Name] = series.Label
		} else {
			labels[series.Name] = series.Name
		}
	}

	table, err := w.tsiService.GetDataByName(ctx, names, spec)
	if err != nil {
		logrus.Errorf("Data collection failed: %v", err)
		return
	}
	if table == nil {
		logrus.Warn("No data loaded in this collection cycle")
		return
	}

	metrics := w.tableToMetrics(table, labels)
	if len(metrics) == 0 {
		logrus.Warn("Collected table carried no reportable values")
		return
	}

	if err := w.insightFinderService.SendMetrics(metrics); err != nil {
		logrus.Errorf("Failed to send metrics: %v", err)
		return
	}

	logrus.Infof("Collection cycle completed: %d rows in %v", table.NumRows(), time.Since(startTime))
}

func (w *Worker) aggregations() []tsi.Aggregation {
	if w.config.Query.Aggregation == "" {
		return nil
	}
	return []tsi.Aggregation{{
		Method:            w.config.Query.Aggregation,
		InterpolationKind: w.config.Query.InterpolationKind,
		InterpolationSpan: w.config.Query.InterpolationSpan,
	}}
}

// tableToMetrics flattens the table into one metric row per timestamp. Cells
// holding the missing marker are left out of the row.
func (w *Worker) tableToMetrics(table *timetable.Table, labels map[string]string) []models.MetricData {
	instanceName := w.config.TSI.Environment
	if instanceName == "" {
		instanceName = "tsi"
	}

	metrics := make([]models.MetricData, 0, table.NumRows())
	for i, ts := range table.Timestamps {
		data := make(map[string]interface{})
		for _, col := range table.Columns {
			if timetable.IsMissing(col.Values[i]) {
				continue
			}
			name := col.Name
			if label, ok := labels[name]; ok {
				name = label
			}
			data[name] = col.Values[i]
		}
		if len(data) == 0 {
			continue
		}
		metrics = append(metrics, models.MetricData{
			Timestamp:    ts.UnixMilli(),
			InstanceName: instanceName,
			Data:         data,
		})
	}
	return metrics
}
