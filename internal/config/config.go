package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Host         string
	Port         int
	AllowOrigins []string
	LogLevel     string
	MaxUploadMB  int
	LogFile      string

	// справочники
	ReferenceBackend string // file | redis
	ReferenceDir     string
	KeywordDir       string
	RedisAddr        string
	RedisPrefix      string

	// внешние API; {id} и {page} подставляются при запросе
	DocumentURL     string
	BrandCatalogURL string
	PartCatalogURL  string
	FetchTimeout    time.Duration
	CrawlRPS        float64
}

var defaults = map[string]any{
	"HOST":              "127.0.0.1",
	"PORT":              5000,
	"ALLOW_ORIGINS":     "*",
	"LOG_LEVEL":         "info",
	"MAX_UPLOAD_MB":     256,
	"LOG_FILE":          "logs/match-service.log",
	"REFERENCE_BACKEND": BackendFile,
	"REFERENCE_DIR":     "data/outputs",
	"KEYWORD_DIR":       "",
	"REDIS_ADDR":        "127.0.0.1:6379",
	"REDIS_PREFIX":      "match:",
	"DOCUMENT_URL":      "",
	"BRAND_CATALOG_URL": "",
	"PART_CATALOG_URL":  "",
	"FETCH_TIMEOUT":     "30s",
	"CRAWL_RPS":         5,
}

// Load читает переменные окружения (без префикса) поверх дефолтов.
func Load() Config {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	return Config{
		Host:             v.GetString("HOST"),
		Port:             v.GetInt("PORT"),
		AllowOrigins:     splitList(v.GetString("ALLOW_ORIGINS")),
		LogLevel:         v.GetString("LOG_LEVEL"),
		MaxUploadMB:      v.GetInt("MAX_UPLOAD_MB"),
		LogFile:          v.GetString("LOG_FILE"),
		ReferenceBackend: strings.ToLower(v.GetString("REFERENCE_BACKEND")),
		ReferenceDir:     v.GetString("REFERENCE_DIR"),
		KeywordDir:       v.GetString("KEYWORD_DIR"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPrefix:      v.GetString("REDIS_PREFIX"),
		DocumentURL:      v.GetString("DOCUMENT_URL"),
		BrandCatalogURL:  v.GetString("BRAND_CATALOG_URL"),
		PartCatalogURL:   v.GetString("PART_CATALOG_URL"),
		FetchTimeout:     v.GetDuration("FETCH_TIMEOUT"),
		CrawlRPS:         v.GetFloat64("CRAWL_RPS"),
	}
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
