package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/laliga-stats/internal/platform/logging"
)

// Config stores runtime configuration for the pipeline.
type Config struct {
	AppEnv         string `validate:"oneof=dev stage prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`
	LogLevel       logging.Level
	LogFormat      string `validate:"oneof=json console"`

	DataDir  string `validate:"required"`
	PagesDir string `validate:"required"`
	// Page names are slash separated and relative to PagesDir.
	FixturesPage string `validate:"required"`
	PlayersPage  string `validate:"required"`
	ReportPath   string `validate:"required"`
	CSVBOM       bool

	IngestMaxWorkers int `validate:"gte=1,lte=64"`
	NoisePrefixes    []string
	SuffixReclaimMap map[string][]string

	DBEnabled               bool
	DBURL                   string `validate:"required_if=DBEnabled true"`
	DBDisablePreparedBinary bool

	UptraceEnabled bool
	UptraceDSN     string `validate:"required_if=UptraceEnabled true"`
}

var defaultNoisePrefixes = "el,clasico,clásico,derbi,madrileno,madrileño"

var defaultSuffixReclaimMap = "real:madrid|sociedad|betis,atletico:madrid,celta:vigo,rayo:vallecano,athletic:club"

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormat := strings.ToLower(strings.TrimSpace(getEnv("APP_LOG_FORMAT", logging.FormatJSON)))
	if logFormat != logging.FormatJSON && logFormat != logging.FormatConsole {
		return Config{}, fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", logFormat, logging.FormatJSON, logging.FormatConsole)
	}

	dataDir := strings.TrimSpace(getEnv("DATA_DIR", "data"))
	pagesDir := strings.TrimSpace(getEnv("PAGES_DIR", filepath.Join(dataDir, "pages")))

	ingestMaxWorkers, err := getEnvAsInt("INGEST_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse INGEST_MAX_WORKERS: %w", err)
	}
	if ingestMaxWorkers <= 0 {
		return Config{}, fmt.Errorf("INGEST_MAX_WORKERS must be > 0")
	}

	reclaimMap, err := parseReclaimMap(getEnv("SUFFIX_RECLAIM_MAP", defaultSuffixReclaimMap))
	if err != nil {
		return Config{}, fmt.Errorf("parse SUFFIX_RECLAIM_MAP: %w", err)
	}

	csvBOM, err := getEnvAsBool("CSV_BOM", true)
	if err != nil {
		return Config{}, fmt.Errorf("parse CSV_BOM: %w", err)
	}

	dbEnabled, err := getEnvAsBool("DB_ENABLED", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_ENABLED: %w", err)
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if dbEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when DB_ENABLED=true")
	}
	dbDisablePreparedBinary, err := getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", true)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	uptraceEnabled, err := getEnvAsBool("UPTRACE_ENABLED", false)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "laliga-stats"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		LogLevel:                logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:               logFormat,
		DataDir:                 dataDir,
		PagesDir:                pagesDir,
		FixturesPage:            strings.TrimSpace(getEnv("FIXTURES_PAGE", "fixtures.html")),
		PlayersPage:             strings.TrimSpace(getEnv("PLAYERS_PAGE", "players.html")),
		ReportPath:              strings.TrimSpace(getEnv("REPORT_PATH", filepath.Join(dataDir, "report.json"))),
		CSVBOM:                  csvBOM,
		IngestMaxWorkers:        ingestMaxWorkers,
		NoisePrefixes:           splitCSV(getEnv("NOISE_PREFIXES", defaultNoisePrefixes)),
		SuffixReclaimMap:        reclaimMap,
		DBEnabled:               dbEnabled,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		UptraceEnabled:          uptraceEnabled,
		UptraceDSN:              uptraceDSN,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Path joins name onto the data directory.
func (c Config) Path(name string) string {
	return filepath.Join(c.DataDir, name)
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.ParseBool(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseReclaimMap reads "root:suffix|suffix,root:suffix".
func parseReclaimMap(raw string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, item := range splitCSV(raw) {
		segments := strings.SplitN(item, ":", 2)
		if len(segments) != 2 {
			return nil, fmt.Errorf("invalid map item %q, expected root:suffix|suffix", item)
		}

		root := strings.TrimSpace(segments[0])
		if root == "" {
			return nil, fmt.Errorf("empty root in item %q", item)
		}
		var suffixes []string
		for _, s := range strings.Split(segments[1], "|") {
			if s = strings.TrimSpace(s); s != "" {
				suffixes = append(suffixes, s)
			}
		}
		if len(suffixes) == 0 {
			return nil, fmt.Errorf("no suffixes in item %q", item)
		}

		out[root] = append(out[root], suffixes...)
	}
	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
