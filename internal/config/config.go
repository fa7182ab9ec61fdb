package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "jobmatch"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"
)

// ErrMissingCredentials means the search provider key or engine id is
// absent. This is the one fatal precondition: no pipeline run starts
// without it.
var ErrMissingCredentials = errors.New("google api key and search engine id are required (set JOBMATCH_GOOGLE_API_KEY and JOBMATCH_SEARCH_ENGINE_ID or add them to config.json)")

// Config contains provider credentials and default pipeline settings.
type Config struct {
	GoogleAPIKey    string `json:"google_api_key"`
	SearchEngineID  string `json:"search_engine_id"`
	DefaultLocation string `json:"default_location"`
	MaxQueries      int    `json:"max_queries"`
	ResultsPerQuery int    `json:"results_per_query"`
	JobsCap         int    `json:"jobs_cap"`
	InternshipsCap  int    `json:"internships_cap"`
}

func DefaultConfig() Config {
	return Config{
		GoogleAPIKey:    envString("JOBMATCH_GOOGLE_API_KEY", ""),
		SearchEngineID:  envString("JOBMATCH_SEARCH_ENGINE_ID", ""),
		DefaultLocation: envString("JOBMATCH_DEFAULT_LOCATION", ""),
		MaxQueries:      envInt("JOBMATCH_MAX_QUERIES", 5),
		ResultsPerQuery: envInt("JOBMATCH_RESULTS_PER_QUERY", 10),
		JobsCap:         envInt("JOBMATCH_JOBS_CAP", 20),
		InternshipsCap:  envInt("JOBMATCH_INTERNSHIPS_CAP", 10),
	}
}

// Credentials returns the provider key pair or ErrMissingCredentials.
func (c Config) Credentials() (key string, engineID string, err error) {
	key = strings.TrimSpace(c.GoogleAPIKey)
	engineID = strings.TrimSpace(c.SearchEngineID)
	if key == "" || engineID == "" {
		return "", "", ErrMissingCredentials
	}
	return key, engineID, nil
}

func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

// Load reads config.json on top of env-derived defaults. A missing or
// empty file is not an error.
func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	return loadFrom(cfg, path)
}

func loadFrom(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// LoadProxies resolves the proxy list from the flag value, the
// JOBMATCH_PROXIES env var, or proxies.txt, in that order.
func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := strings.TrimSpace(os.Getenv("JOBMATCH_PROXIES")); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
