package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// defaultTickers is the built-in US large-cap scan universe, grouped
// roughly by sector. SCAN_TICKERS overrides the whole list.
var defaultTickers = []string{
	// Mega cap tech
	"AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "NVDA", "META", "TSLA", "AVGO", "ORCL",
	// Semiconductors
	"AMD", "INTC", "QCOM", "TXN", "ADI", "MRVL", "MU", "AMAT", "LRCX", "KLAC",
	"ASML", "SNPS", "CDNS", "MCHP", "ON", "NXPI", "MPWR", "SWKS",
	// Software and cloud
	"CRM", "ADBE", "NOW", "INTU", "WDAY", "PANW", "CRWD", "ZS", "DDOG", "NET",
	"SNOW", "PLTR", "U", "DOCU", "TWLO", "ZM", "OKTA", "MDB",
	// E-commerce and consumer internet
	"SHOP", "MELI", "BKNG", "ABNB", "DASH", "UBER", "LYFT", "ETSY", "W", "CHWY",
	// Financials
	"JPM", "BAC", "WFC", "GS", "MS", "C", "BLK", "SCHW", "AXP", "V", "MA", "PYPL",
	"SQ", "COIN", "SOFI",
	// Healthcare
	"JNJ", "UNH", "LLY", "ABBV", "MRK", "TMO", "ABT", "DHR", "PFE", "AMGN",
	"GILD", "VRTX", "REGN", "BMY", "CVS",
	// Industrials
	"BA", "CAT", "GE", "HON", "UPS", "RTX", "LMT", "DE", "MMM", "UNP",
	// Energy
	"XOM", "CVX", "COP", "SLB", "EOG", "MPC", "PSX", "VLO", "OXY", "HAL",
	// Consumer staples and retail
	"PG", "KO", "PEP", "COST", "WMT", "HD", "LOW", "NKE", "SBUX", "MCD",
	"TGT", "DIS", "NFLX", "CMCSA",
	// Other large caps
	"IBM", "CSCO", "ADSK", "ADP", "PAYX", "ROP", "ICE", "CME", "SPGI", "MCO",
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Universe and admission
	ScanTickers   string
	MinSignals    int
	RiskFilter    bool
	MaxRiskScore  int
	MaxVolatility float64
	MinAvgVolume  float64
	MinPrice      float64
	MinHistory    int

	// Pipeline
	ScanWorkers   int
	FetchTimeoutS int

	// Output
	OutputDir string

	// Infrastructure
	MetricsAddr   string
	RedisAddr     string
	RedisPassword string
	BarCacheTTLS  int
	LogLevel      string

	// Google Sheets upload (both required to enable)
	GoogleCredentials string
	GoogleSheetID     string

	// Alert channels (each optional)
	TelegramBotToken string
	TelegramChatID   string
	AlertWebhookURL  string

	// Signal rule subset (comma-separated names, empty = all)
	EnabledSignals string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ScanTickers:   getEnv("SCAN_TICKERS", ""),
		MinSignals:    getEnvInt("MIN_SIGNALS", 3),
		RiskFilter:    getEnvBool("RISK_FILTER", true),
		MaxRiskScore:  getEnvInt("MAX_RISK_SCORE", 70),
		MaxVolatility: getEnvFloat("MAX_VOLATILITY", 60),
		MinAvgVolume:  getEnvFloat("MIN_AVG_VOLUME", 500_000),
		MinPrice:      getEnvFloat("MIN_PRICE", 5),
		MinHistory:    getEnvInt("MIN_HISTORY", 50),

		ScanWorkers:   getEnvInt("SCAN_WORKERS", 8),
		FetchTimeoutS: getEnvInt("FETCH_TIMEOUT_S", 15),

		OutputDir: getEnv("OUTPUT_DIR", "stock_data"),

		MetricsAddr:   getEnv("METRICS_ADDR", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		BarCacheTTLS:  getEnvInt("BAR_CACHE_TTL_S", 900),
		LogLevel:      getEnv("LOG_LEVEL", "info"),

		GoogleCredentials: getEnv("GOOGLE_CREDENTIALS", ""),
		GoogleSheetID:     getEnv("GOOGLE_SHEET_ID", ""),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		AlertWebhookURL:  getEnv("ALERT_WEBHOOK_URL", ""),

		EnabledSignals: getEnv("ENABLED_SIGNALS", ""),
	}
}

// ParseTickers returns the scan universe: the SCAN_TICKERS list when
// set, otherwise the built-in default universe.
func (c *Config) ParseTickers() []string {
	if strings.TrimSpace(c.ScanTickers) == "" {
		out := make([]string, len(defaultTickers))
		copy(out, defaultTickers)
		return out
	}
	parts := strings.Split(c.ScanTickers, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		tickers = append(tickers, p)
	}
	return tickers
}

// ParseSignals splits the ENABLED_SIGNALS list. Empty means the full
// rule table; name validation happens downstream.
func (c *Config) ParseSignals() []string {
	parts := strings.Split(c.EnabledSignals, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		names = append(names, p)
	}
	return names
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
