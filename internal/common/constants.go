package common

// Environment variable keys
const (
	EnvConfigFile   = "CONFIG_FILE"
	EnvPort         = "PORT"
	EnvMetricsPort  = "METRICS_PORT"
	EnvDataSource   = "DATA_SOURCE"
	EnvDataPath     = "DATA_PATH"
	EnvHTTPTimeout  = "HTTP_TIMEOUT"
	EnvLogLevel     = "LOG_LEVEL"
	EnvTrainHoldout = "TRAIN_HOLDOUT"
)

// Configuration defaults
const (
	DefaultPort         = 8000
	DefaultMetricsPort  = 8080
	DefaultLogLevel     = "info"
	DefaultTrainHoldout = 0.0
)

// Validation constants
const (
	MinPort         = 1024
	MaxPort         = 65535
	MaxTrainHoldout = 0.9
)

// Common error messages
const (
	ErrMsgDataSourceRequired = "training data source is required"
	ErrMsgPortsMustDiffer    = "API and metrics ports must differ"
)
