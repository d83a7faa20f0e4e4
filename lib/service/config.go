package service

type Config struct {
	DatabaseUri                       string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns                  int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns              int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime           int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	SentryDSN                         string  `envconfig:"SENTRY_DSN"`
	DatadogAgentUrl                   string  `envconfig:"DATADOG_AGENT_URL"`
	SentryTracesSampleRate            float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	LogFilePath                       string  `envconfig:"LOG_FILE_PATH"`
	JWTSecret                         []byte  `envconfig:"JWT_SECRET" required:"true"`
	JWTAccessTokenExpiry              int     `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"` // in seconds, default 2 days
	AdminToken                        string  `envconfig:"ADMIN_TOKEN"`
	Host                              string  `envconfig:"HOST" default:"localhost:3000"`
	Port                              int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit                  int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit                   int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit                    int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus                  bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort                    int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	WebhookUrl                        string  `envconfig:"WEBHOOK_URL"`
	WebhookMaxElapsedTime             int     `envconfig:"WEBHOOK_MAX_ELAPSED_TIME" default:"60"` // in seconds
	MaxTargetAmount                   int64   `envconfig:"MAX_TARGET_AMOUNT" default:"0"`       //0 means the check is disabled
	MaxContributionAmount             int64   `envconfig:"MAX_CONTRIBUTION_AMOUNT" default:"0"` //0 means the check is disabled
	MaxNameLength                     int     `envconfig:"MAX_NAME_LENGTH" default:"256"`
	RabbitMQUri                       string  `envconfig:"RABBITMQ_URI"`
	RabbitMQLedgerEventExchange       string  `envconfig:"RABBITMQ_LEDGER_EVENT_EXCHANGE" default:"community_ledger_events"`
	RabbitMQContributionExchange      string  `envconfig:"RABBITMQ_CONTRIBUTION_EXCHANGE" default:"community_contributions"`
	RabbitMQContributionConsumerQueue string  `envconfig:"RABBITMQ_CONTRIBUTION_CONSUMER_QUEUE_NAME" default:"community_contribution_consumer"`
	ConsumeContributions              bool    `envconfig:"CONSUME_CONTRIBUTIONS" default:"false"`
}
