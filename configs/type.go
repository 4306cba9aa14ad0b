package config

type Config struct {
	Agent         AgentConfig         `yaml:"agent"`
	TSI           TSIConfig           `yaml:"tsi"`
	Query         QueryConfig         `yaml:"query"`
	InsightFinder InsightFinderConfig `yaml:"insightfinder"`
}

type AgentConfig struct {
	LogLevel string `yaml:"log_level"`
	Timezone string `yaml:"timezone"`
}

type TSIConfig struct {
	TenantID        string `yaml:"tenant_id"`
	ClientID        string `yaml:"client_id"`
	ClientSecret    string `yaml:"client_secret"`
	ApplicationName string `yaml:"application_name"`
	Environment     string `yaml:"environment"` // TSI environment display name
	APIVersion      string `yaml:"api_version"`
	AuthTimeout     int    `yaml:"auth_timeout"`    // seconds, token and metadata calls
	RequestTimeout  int    `yaml:"request_timeout"` // seconds, 0 keeps the transport default
	MaxRows         int    `yaml:"max_rows"`        // row cap per query
	JoinTolerance   int    `yaml:"join_tolerance"`  // seconds, raw-mode nearest-timestamp join

	// Endpoint overrides, used for sovereign clouds and tests. Empty values
	// select the public Azure endpoints.
	AuthURL        string `yaml:"auth_url"`
	APIURL         string `yaml:"api_url"`
	EnvironmentURL string `yaml:"environment_url"`
}

type QueryConfig struct {
	Series            []SeriesConfig `yaml:"series"`
	Interval          string         `yaml:"interval"`
	Aggregation       string         `yaml:"aggregation"`
	InterpolationKind string         `yaml:"interpolation_kind"`
	InterpolationSpan string         `yaml:"interpolation_span"`
	Lookback          int            `yaml:"lookback"` // seconds of history per collection cycle
	UseWarmStore      bool           `yaml:"use_warm_store"`
}

type SeriesConfig struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
}

type InsightFinderConfig struct {
	ServerURL        string `yaml:"server_url"`
	UserName         string `yaml:"username"`
	LicenseKey       string `yaml:"license_key"`
	ProjectName      string `yaml:"project_name"`
	SystemName       string `yaml:"system_name"`
	SamplingInterval int    `yaml:"sampling_interval"` // in seconds
	CloudType        string `yaml:"cloud_type"`        // OnPremise, AWS, Azure, etc.
	InstanceType     string `yaml:"instance_type"`     // OnPremise, EC2, etc.
	ProjectType      string `yaml:"project_type"`      // Metric, Log, etc.
	IsContainer      bool   `yaml:"is_container"`
}
