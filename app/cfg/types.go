package cfg

type Cfg struct {
	// Database configuration
	DBPath string

	// Application configuration
	Port              string
	JWTSecret         string
	WorkerCount       int
	SchedulerInterval int
	ReenrichBatchSize int

	// AI provider configuration
	GeminiAPIKey     string
	GeminiModel      string
	GeminiEmbedModel string

	// Scraping configuration
	UserAgent     string
	ScrapeTimeout int

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
