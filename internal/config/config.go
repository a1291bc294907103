package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/llamabar/internal/app"
)

// Version is reported in the menu footer.
var Version = "dev"

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envModelsDir    = "LLAMABAR_MODELS_DIR"
	envCatalog      = "LLAMABAR_CATALOG"
	envPrefs        = "LLAMABAR_PREFS"
	envServerBin    = "LLAMABAR_SERVER_BIN"
	envPort         = "LLAMABAR_PORT"
	envMaxDownloads = "LLAMABAR_MAX_DOWNLOADS"
	envPoll         = "LLAMABAR_POLL_INTERVAL"
	envWidth        = "LLAMABAR_WIDTH"
	envHeight       = "LLAMABAR_HEIGHT"
	envShowFooter   = "LLAMABAR_FOOTER"
	envOpen         = "LLAMABAR_OPEN"
	envVerbose      = "LLAMABAR_VERBOSE"
	envTrace        = "LLAMABAR_TRACE"
	envLogFile      = "LLAMABAR_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)
	configDir, cacheDir := baseDirs(env)

	fs := flag.NewFlagSet("llamabar", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	modelsDir := fs.String("models-dir", envOrDefault(env, envModelsDir, filepath.Join(cacheDir, "llamabar", "models")), "directory holding downloaded models")
	catalogPath := fs.String("catalog", envOrDefault(env, envCatalog, ""), "YAML model catalog (empty uses the built-in catalog)")
	prefsPath := fs.String("prefs", envOrDefault(env, envPrefs, filepath.Join(configDir, "llamabar", "prefs.yaml")), "preferences file")
	serverBin := fs.String("server-bin", envOrDefault(env, envServerBin, "llama-server"), "inference server executable")
	port := fs.Int("port", envOrInt(env, envPort, 8080), "port the inference server listens on")
	maxDownloads := fs.Int("max-downloads", envOrInt(env, envMaxDownloads, 2), "concurrent downloads")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, time.Second), "interval for sampling server memory and download progress")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	open := fs.Bool("open", envOrBool(env, envOpen, false), "open the menu at startup")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			ModelsDir:    *modelsDir,
			CatalogPath:  *catalogPath,
			PrefsPath:    *prefsPath,
			ConfigDir:    configDir,
			ServerBin:    *serverBin,
			Port:         *port,
			MaxDownloads: *maxDownloads,
			PollInterval: *poll,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			Open:         *open,
			Version:      Version,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"modelsDir":    *modelsDir,
			"catalog":      *catalogPath,
			"prefs":        *prefsPath,
			"serverBin":    *serverBin,
			"port":         strconv.Itoa(*port),
			"maxDownloads": strconv.Itoa(*maxDownloads),
			"poll":         poll.String(),
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"open":         strconv.FormatBool(*open),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// baseDirs resolves the XDG config and cache roots from env, falling back to
// ~/.config and ~/.cache.
func baseDirs(env map[string]string) (configDir, cacheDir string) {
	home := env["HOME"]
	configDir = env["XDG_CONFIG_HOME"]
	if configDir == "" {
		configDir = filepath.Join(home, ".config")
	}
	cacheDir = env["XDG_CACHE_HOME"]
	if cacheDir == "" {
		cacheDir = filepath.Join(home, ".cache")
	}
	return configDir, cacheDir
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
	if v, ok := env[key]; ok {
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

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
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

// Validate checks ranges the flag parser cannot.
func Validate(cfg Config) error {
	a := cfg.App
	if strings.TrimSpace(a.ModelsDir) == "" {
		return fmt.Errorf("models directory must be set")
	}
	if strings.TrimSpace(a.PrefsPath) == "" {
		return fmt.Errorf("preferences path must be set")
	}
	if a.Port < 1 || a.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535 (got %d)", a.Port)
	}
	if a.MaxDownloads < 1 {
		return fmt.Errorf("max-downloads must be >= 1 (got %d)", a.MaxDownloads)
	}
	if a.PollInterval < 100*time.Millisecond {
		return fmt.Errorf("poll interval must be at least 100ms (got %s)", a.PollInterval)
	}
	return nil
}
