package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	UploadStoreType string
	UploadDir       string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	MaxUploadBytes  int64
	Tagger          string
	NERModelDir     string
	LexiconFile     string
	GeminiAPIKey    string
	GeminiModel     string
	RateLimitRPS    float64
	RateLimitBurst  int
	LogJSON         bool
	LogDebug        bool
}

var defaults = map[string]any{
	"port":               "5000",
	"env":                "dev",
	"cors_allow_origins": "*",
	"upload_store":       "local",
	"upload_dir":         "uploads",
	"aws_region":         "",
	"s3_bucket":          "",
	"s3_prefix":          "",
	"max_upload_bytes":   int64(10 << 20),
	"tagger":             "prose",
	"ner_model_dir":      "",
	"lexicon_file":       "",
	"gemini_api_key":     "",
	"gemini_model":       "gemini-2.5-flash",
	"rate_limit_rps":     0.0,
	"rate_limit_burst":   10,
	"log_json":           true,
	"log_debug":          false,
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	cfg := Config{
		Port:            v.GetString("port"),
		Env:             normalizeEnv(v.GetString("env")),
		CORSAllowOrigin: splitAndTrim(v.GetString("cors_allow_origins")),
		UploadStoreType: normalizeStoreType(v.GetString("upload_store")),
		UploadDir:       v.GetString("upload_dir"),
		AWSRegion:       v.GetString("aws_region"),
		S3Bucket:        v.GetString("s3_bucket"),
		S3Prefix:        v.GetString("s3_prefix"),
		MaxUploadBytes:  v.GetInt64("max_upload_bytes"),
		Tagger:          normalizeTagger(v.GetString("tagger")),
		NERModelDir:     v.GetString("ner_model_dir"),
		LexiconFile:     v.GetString("lexicon_file"),
		GeminiAPIKey:    v.GetString("gemini_api_key"),
		GeminiModel:     v.GetString("gemini_model"),
		RateLimitRPS:    v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:  v.GetInt("rate_limit_burst"),
		LogJSON:         v.GetBool("log_json"),
		LogDebug:        v.GetBool("log_debug"),
	}

	if cfg.UploadStoreType == "s3" && cfg.S3Bucket == "" {
		log.Printf("UPLOAD_STORE=s3 requires S3_BUCKET")
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}

	return cfg
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		// godotenv.Load stops at the first missing file, so load them one by one.
		_ = godotenv.Load(path)
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeTagger(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini":
		return "gemini"
	default:
		return "prose"
	}
}
