package models

// Wire structures for the Azure Time Series Insights REST API.

type OAuthTokenResponse struct {
	TokenType   string `json:"token_type"`
	ExpiresIn   string `json:"expires_in"`
	AccessToken string `json:"access_token"`
}

type EnvironmentsResponse struct {
	Environments []Environment `json:"environments"`
}

type Environment struct {
	DisplayName     string `json:"displayName"`
	EnvironmentID   string `json:"environmentId"`
	EnvironmentFqdn string `json:"environmentFqdn"`
	ResourceID      string `json:"resourceId"`
}

type AvailabilityResponse struct {
	Availability *Availability `json:"availability"`
}

type Availability struct {
	IntervalSize string           `json:"intervalSize"`
	Distribution map[string]int64 `json:"distribution"`
	Range        SearchSpan       `json:"range"`
}

type InstancesResponse struct {
	Instances         []Instance `json:"instances"`
	ContinuationToken string     `json:"continuationToken,omitempty"`
}

type Instance struct {
	TimeSeriesID   []string          `json:"timeSeriesId"`
	TypeID         string            `json:"typeId,omitempty"`
	Name           string            `json:"name,omitempty"`
	Description    string            `json:"description,omitempty"`
	HierarchyIDs   []string          `json:"hierarchyIds,omitempty"`
	InstanceFields map[string]string `json:"instanceFields,omitempty"`
}

// Batch write/delete of instances ($batch endpoint).
type InstancesBatchRequest struct {
	Put    []Instance         `json:"put,omitempty"`
	Delete *TimeSeriesIDBatch `json:"delete,omitempty"`
}

type TimeSeriesIDBatch struct {
	TimeSeriesIDs [][]string `json:"timeSeriesIds"`
}

type InstancesBatchResponse struct {
	Put    []BatchItemOutcome `json:"put,omitempty"`
	Delete []BatchItemOutcome `json:"delete,omitempty"`
}

// One entry per submitted item, error set when that item failed.
type BatchItemOutcome struct {
	Error *ErrorEnvelope `json:"error,omitempty"`
}

type TypesResponse struct {
	Types             []TimeSeriesType `json:"types"`
	ContinuationToken string           `json:"continuationToken,omitempty"`
}

type TimeSeriesType struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description,omitempty"`
	Variables   map[string]TypeVariable `json:"variables"`
}

type TypeVariable struct {
	Kind        string `json:"kind"`
	Value       *Tsx   `json:"value,omitempty"`
	Filter      *Tsx   `json:"filter,omitempty"`
	Aggregation *Tsx   `json:"aggregation,omitempty"`
}

type HierarchiesResponse struct {
	Hierarchies       []Hierarchy `json:"hierarchies"`
	ContinuationToken string      `json:"continuationToken,omitempty"`
}

type Hierarchy struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Source HierarchySource `json:"source"`
}

type HierarchySource struct {
	InstanceFieldNames []string `json:"instanceFieldNames"`
}

// QueryRequest is the body POSTed to /timeseries/query. Exactly one of the
// three mode fields is set.
type QueryRequest struct {
	GetSeries       *SeriesQuery `json:"getSeries,omitempty"`
	AggregateSeries *SeriesQuery `json:"aggregateSeries,omitempty"`
	GetEvents       *EventsQuery `json:"getEvents,omitempty"`
}

type SeriesQuery struct {
	TimeSeriesID       []string                  `json:"timeSeriesId"`
	SearchSpan         SearchSpan                `json:"searchSpan"`
	Filter             *Tsx                      `json:"filter"`
	Interval           string                    `json:"interval,omitempty"`
	InlineVariables    map[string]InlineVariable `json:"inlineVariables"`
	ProjectedVariables []string                  `json:"projectedVariables"`
	Take               int                       `json:"take,omitempty"`
}

type EventsQuery struct {
	TimeSeriesID        []string            `json:"timeSeriesId"`
	SearchSpan          SearchSpan          `json:"searchSpan"`
	Filter              *Tsx                `json:"filter"`
	ProjectedProperties []ProjectedProperty `json:"projectedProperties"`
	Take                int                 `json:"take,omitempty"`
}

type ProjectedProperty struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type SearchSpan struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type Tsx struct {
	Tsx string `json:"tsx"`
}

type InlineVariable struct {
	Kind          string         `json:"kind"`
	Value         *Tsx           `json:"value,omitempty"`
	Filter        *Tsx           `json:"filter"`
	Aggregation   *Tsx           `json:"aggregation,omitempty"`
	Interpolation *Interpolation `json:"interpolation,omitempty"`
}

type Interpolation struct {
	Kind     string                `json:"kind"`
	Boundary InterpolationBoundary `json:"boundary"`
}

type InterpolationBoundary struct {
	Span string `json:"span"`
}

type QueryResponse struct {
	Timestamps        []string         `json:"timestamps"`
	Properties        []PropertyValues `json:"properties"`
	Progress          float64          `json:"progress,omitempty"`
	ContinuationToken string           `json:"continuationToken,omitempty"`
	Error             *ErrorEnvelope   `json:"error,omitempty"`
}

// PropertyValues is one projected variable's column, aligned to the response
// timestamps. Null values stay as nil entries.
type PropertyValues struct {
	Name   string     `json:"name"`
	Type   string     `json:"type"`
	Values []*float64 `json:"values"`
}

type ErrorEnvelope struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	InnerError *ErrorEnvelope `json:"innerError,omitempty"`
}

// InsightFinder data structure
type MetricData struct {
	Timestamp     int64                  `json:"timestamp"`
	InstanceName  string                 `json:"instanceName"`
	Data          map[string]interface{} `json:"data"`
	ComponentName string                 `json:"componentName,omitempty"`
}
