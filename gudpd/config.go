package gudpd

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultMaxConcurrentResponses limits in-flight response goroutines.
	DefaultMaxConcurrentResponses = 500
	// DefaultMaxRequestSize is the largest UDP datagram accepted.
	DefaultMaxRequestSize = 64
	// DefaultRequestsPerClient is the per-IP rate limit per window.
	DefaultRequestsPerClient = 100
	// DefaultRateWindow is the rate limiting window.
	DefaultRateWindow = 1 * time.Second
	// DefaultResponseTimeout bounds a single response operation.
	DefaultResponseTimeout = 1 * time.Second
	// DefaultReadTimeout is the UDP read deadline per loop iteration.
	DefaultReadTimeout = 10 * time.Millisecond
)

// Config holds server settings. ConfigDir follows the DJB clock daemon
// convention: an optional "port" file overrides DefaultPort, and client
// access is granted through clientok files (see ClientOK).
type Config struct {
	DefaultPort            string
	ConfigDir              string
	MaxConcurrentResponses int
	MaxRequestSize         int
	RequestsPerClient      int
	RateWindow             time.Duration
	ResponseTimeout        time.Duration
	ReadTimeout            time.Duration
}

func (config *Config) applyDefaults() {
	if config.MaxConcurrentResponses <= 0 {
		config.MaxConcurrentResponses = DefaultMaxConcurrentResponses
	}
	if config.MaxRequestSize <= 0 {
		config.MaxRequestSize = DefaultMaxRequestSize
	}
	if config.RequestsPerClient <= 0 {
		config.RequestsPerClient = DefaultRequestsPerClient
	}
	if config.RateWindow <= 0 {
		config.RateWindow = DefaultRateWindow
	}
	if config.ResponseTimeout <= 0 {
		config.ResponseTimeout = DefaultResponseTimeout
	}
	if config.ReadTimeout <= 0 {
		config.ReadTimeout = DefaultReadTimeout
	}
}

// insideConfigDir reports whether path resolves inside the config
// directory, guarding against escapes through odd names.
func insideConfigDir(path, configDir string) bool {
	absConfigDir, err := filepath.Abs(configDir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return strings.HasPrefix(absPath, absConfigDir+string(filepath.Separator))
}

// normalizePort validates a port spec read from the port file and
// returns it in ":port" form.
func normalizePort(portStr string) (string, bool) {
	if portStr == "" {
		return "", false
	}

	num := portStr
	if portStr[0] == ':' {
		if len(portStr) == 1 {
			return "", false
		}
		num = portStr[1:]
	}

	port, err := strconv.Atoi(num)
	if err != nil || port <= 0 || port > 65535 {
		return "", false
	}
	return ":" + num, true
}

// GetPort returns the listening port in ":port" form: the config
// directory's "port" file when present and valid, DefaultPort otherwise.
func (config *Config) GetPort() string {
	if config.ConfigDir == "" {
		return config.DefaultPort
	}

	portFile := filepath.Join(config.ConfigDir, "port")
	if !insideConfigDir(portFile, config.ConfigDir) {
		return config.DefaultPort
	}

	data, err := os.ReadFile(portFile)
	if err != nil {
		return config.DefaultPort
	}

	if result, valid := normalizePort(strings.TrimSpace(string(data))); valid {
		return result
	}
	return config.DefaultPort
}
