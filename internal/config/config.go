package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/atomicstack/evsched/internal/app"
	"github.com/atomicstack/evsched/internal/notify"
	"github.com/atomicstack/evsched/internal/search"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envBaseURL      = "EVSCHED_BASE_URL"
	envWidth        = "EVSCHED_WIDTH"
	envHeight       = "EVSCHED_HEIGHT"
	envShowFooter   = "EVSCHED_FOOTER"
	envTrace        = "EVSCHED_TRACE"
	envLogFile      = "EVSCHED_LOG_FILE"
	envDebounce     = "EVSCHED_DEBOUNCE"
	envToastTimeout = "EVSCHED_TOAST_TIMEOUT"
	envTimeout      = "EVSCHED_TIMEOUT"
	envEnvFile      = "EVSCHED_ENV_FILE"

	defaultBaseURL = "http://localhost:5000"
	defaultEnvFile = ".env"
	defaultTimeout = 10 * time.Second
)

// Load parses configuration from CLI arguments, environment variables and an
// optional dotenv file. Real environment variables take precedence over the
// file.
func Load() (Config, error) {
	environ := os.Environ()
	path := envOrDefault(parseEnv(environ), envEnvFile, defaultEnvFile)
	dotenv, err := readDotenv(path)
	if err != nil {
		return Config{}, err
	}
	return LoadArgs(os.Args[1:], append(dotenv, environ...))
}

func readDotenv(path string) ([]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	out := make([]string, 0, len(values))
	for k, v := range values {
		out = append(out, k+"="+v)
	}
	return out, nil
}

// LoadArgs allows tests to supply specific args/environment. Later environ
// entries override earlier ones.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("evsched", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	baseURL := fs.String("base-url", envOrDefault(env, envBaseURL, defaultBaseURL), "base URL of the event scheduler server")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, true), "show the key hint footer")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	debounce := fs.Duration("debounce", envOrDuration(env, envDebounce, search.DefaultDelay), "quiet period before a quick search is sent")
	toastTimeout := fs.Duration("toast-timeout", envOrDuration(env, envToastTimeout, notify.DefaultAutoDismiss), "how long info and success notifications stay visible")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, defaultTimeout), "HTTP request timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *debounce <= 0 {
		return Config{}, fmt.Errorf("debounce must be > 0 (got %s)", *debounce)
	}
	if *toastTimeout <= 0 {
		return Config{}, fmt.Errorf("toast-timeout must be > 0 (got %s)", *toastTimeout)
	}

	cfg := Config{
		App: app.Config{
			BaseURL:      strings.TrimSpace(*baseURL),
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Debounce:     *debounce,
			ToastTimeout: *toastTimeout,
			Timeout:      *timeout,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"baseURL":      *baseURL,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"logFile":      *logFile,
			"debounce":     debounce.String(),
			"toastTimeout": toastTimeout.String(),
			"timeout":      timeout.String(),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// envOrDuration accepts Go durations ("300ms") or bare integers as
// milliseconds.
func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.BaseURL == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(cfg.App.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https (got %q)", cfg.App.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL must include a host (got %q)", cfg.App.BaseURL)
	}
	return nil
}
