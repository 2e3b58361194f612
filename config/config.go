package config

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"12233"`
	APIKey  string `env:"API_KEY,required"`
}

type DatabaseConfig struct {
	Host            string `env:"POSTGRES_HOST,required"`
	Port            string `env:"POSTGRES_PORT,required"`
	User            string `env:"POSTGRES_USER,required"`
	DBName          string `env:"POSTGRES_DB_NAME,required"`
	Password        string `env:"POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"POSTGRES_DB_MAX_CONN" envDefault:"50"`
	MaxIdleConn     int    `env:"POSTGRES_DB_MAX_IDLE_CONN" envDefault:"10"`
	ConnMaxLifetime int    `env:"POSTGRES_DB_CONN_MAX_LIFETIME" envDefault:"300"`
	LogLevel        string `env:"POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"POSTGRES_SSL_MODE" envDefault:"require"`
}

type GraphConfig struct {
	URL            string `env:"MSAL_GRAPH_URL" envDefault:"https://graph.microsoft.com/v1.0"`
	ClientID       string `env:"MSAL_CLIENT_ID,required"`
	ClientSecret   string `env:"MSAL_CLIENT_SECRET,required"`
	TenantID       string `env:"MSAL_TENANT_ID,required"`
	InboxToProcess string `env:"INBOX_TO_PROCESS,required"`
	PageSize       int    `env:"MSAL_CRAWL_PAGE_SIZE" envDefault:"100"`
	TimeoutSeconds int    `env:"MSAL_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

type OpenAIConfig struct {
	URL            string  `env:"OPENAI_API_URL" envDefault:"https://api.openai.com/v1"`
	ApiKey         string  `env:"OPENAI_API_KEY,required"`
	ClassifyModel  string  `env:"OPENAI_CLASSIFY_MODEL" envDefault:"gpt-4o-mini"`
	GenerateModel  string  `env:"OPENAI_GENERATE_MODEL" envDefault:"gpt-4o"`
	MaxTokens      int     `env:"OPENAI_MAX_TOKENS" envDefault:"2000"`
	Temperature    float64 `env:"OPENAI_TEMPERATURE" envDefault:"1"`
	TimeoutSeconds int     `env:"OPENAI_REQUEST_TIMEOUT_SECONDS" envDefault:"60"`
}

type AnonymizerConfig struct {
	URL            string `env:"ANONYMIZER_URL" envDefault:"http://localhost:8051"`
	TimeoutSeconds int    `env:"ANONYMIZER_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
}

type ProcessingConfig struct {
	ToRecipients          []string `env:"REPLY_TO_RECIPIENTS" envSeparator:","`
	CcRecipients          []string `env:"REPLY_CC_RECIPIENTS" envSeparator:","`
	NonCategoryRecipients []string `env:"NON_CATEGORY_RECIPIENTS" envSeparator:","`
	AnalysisDir           string   `env:"ANALYSIS_RESULTS_DIR" envDefault:"analysis-results"`
}
