package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// AppName is used for XDG directories and environment variable prefixes.
const AppName = "vocabdrill"

// envPrefix prefixes every environment override, e.g. VOCABDRILL_API_URL.
const envPrefix = "VOCABDRILL_"

// Config holds all runtime configuration.
type Config struct {
	// APIURL is the backend base URL, including the /api suffix.
	APIURL string `yaml:"api_url"`

	Identity IdentityConfig `yaml:"identity"`
	Drill    DrillConfig    `yaml:"drill"`
	Audio    AudioConfig    `yaml:"audio"`
	Coach    CoachConfig    `yaml:"coach"`

	// DBPath is the SQLite journal location.
	DBPath string `yaml:"db_path"`

	LogPath  string `yaml:"log_path"`
	LogLevel string `yaml:"log_level"`

	// CacheDir holds decoded pronunciation audio.
	CacheDir string `yaml:"cache_dir"`
}

// IdentityConfig describes who is learning. InitData takes precedence over
// the individual fields when set.
type IdentityConfig struct {
	UserID      int64  `yaml:"user_id"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Username    string `yaml:"username"`
	ColorScheme string `yaml:"color_scheme"`
	InitData    string `yaml:"init_data"`
}

// DrillConfig tunes the learning session.
type DrillConfig struct {
	BatchSize    int   `yaml:"batch_size"`
	ReviewWindow int   `yaml:"review_window"`
	DefaultQuota int   `yaml:"default_quota"`
	QuotaChoices []int `yaml:"quota_choices"`

	CorrectDelay    time.Duration `yaml:"correct_delay"`
	WrongQuizDelay  time.Duration `yaml:"wrong_quiz_delay"`
	WrongTextReveal time.Duration `yaml:"wrong_text_reveal"`
}

// AudioConfig names the external commands used for pronunciation. In
// arguments, {file} is replaced by the clip path, {text} by the word and
// {rate} by SpeechRate; without {file} or {text} the value is appended.
type AudioConfig struct {
	Player     []string `yaml:"player"`
	Speech     []string `yaml:"speech"`
	SpeechRate string   `yaml:"speech_rate"`
}

// CoachConfig selects the LLM provider backing the word coach.
// An empty Provider disables the coach; "auto" picks whichever of
// GEMINI_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY is set.
type CoachConfig struct {
	Provider string `yaml:"provider"`

	AnthropicKey   string `yaml:"anthropic_key"`
	AnthropicModel string `yaml:"anthropic_model"`
	OpenAIKey      string `yaml:"openai_key"`
	OpenAIModel    string `yaml:"openai_model"`
	OpenAIBaseURL  string `yaml:"openai_base_url"`
	GeminiKey      string `yaml:"gemini_key"`
	GeminiModel    string `yaml:"gemini_model"`

	MaxAttempts int           `yaml:"max_attempts"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Default returns a Config with built-in defaults. Paths resolve under the
// XDG base directories.
func Default() Config {
	return Config{
		APIURL: "http://localhost:8000/api",
		Identity: IdentityConfig{
			ColorScheme: "dark",
		},
		Drill: DrillConfig{
			BatchSize:       5,
			ReviewWindow:    10,
			DefaultQuota:    5,
			QuotaChoices:    []int{5, 10, 15},
			CorrectDelay:    1500 * time.Millisecond,
			WrongQuizDelay:  2000 * time.Millisecond,
			WrongTextReveal: 1000 * time.Millisecond,
		},
		Audio: AudioConfig{
			Player:     []string{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
			Speech:     []string{"espeak", "-v", "en-us", "-s", "{rate}"},
			SpeechRate: "140",
		},
		Coach: CoachConfig{
			AnthropicModel: "claude-haiku",
			OpenAIModel:    "gpt-4o-mini",
			GeminiModel:    "gemini-flash",
			MaxAttempts:    3,
			Timeout:        30 * time.Second,
		},
		DBPath:   filepath.Join(xdg.DataHome, AppName, AppName+".db"),
		LogPath:  filepath.Join(xdg.StateHome, AppName, AppName+".log"),
		LogLevel: "info",
		CacheDir: filepath.Join(xdg.CacheHome, AppName, "audio"),
	}
}

// DefaultPath returns the config file location, creating its directory.
func DefaultPath() (string, error) {
	p, err := xdg.ConfigFile(AppName + "/config.yaml")
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return p, nil
}

// Loader reads configuration from a file system.
type Loader struct {
	Fs afero.Fs

	// Path overrides the config file location.
	Path string

	// DotEnv lists .env files to load before reading the environment.
	// Missing files are ignored.
	DotEnv []string

	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// NewLoader returns a Loader over the OS file system.
func NewLoader(path string) *Loader {
	return &Loader{
		Fs:     afero.NewOsFs(),
		Path:   path,
		DotEnv: []string{".env"},
		Getenv: os.Getenv,
	}
}

// Load applies, in order: defaults, the YAML file, .env files and
// VOCABDRILL_* environment variables. A missing file is created with the
// defaults, so the first run leaves an editable config behind.
func (l *Loader) Load() (Config, error) {
	cfg := Default()

	path := l.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	exists, err := afero.Exists(l.Fs, path)
	if err != nil {
		return cfg, fmt.Errorf("stat config: %w", err)
	}
	if !exists {
		if err := writeFile(l.Fs, path, cfg); err != nil {
			return cfg, err
		}
	} else if err := readFile(l.Fs, path, &cfg); err != nil {
		return cfg, err
	}

	for _, f := range l.DotEnv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", f, err)
		}
	}

	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if err := applyEnv(&cfg, getenv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func readFile(fs afero.Fs, path string, cfg *Config) error {
	f, err := fs.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func writeFile(fs afero.Fs, path string, cfg Config) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	if err := enc.Encode(&cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Save writes cfg to path, replacing any existing file.
func Save(fs afero.Fs, path string, cfg Config) error {
	return writeFile(fs, path, cfg)
}

func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v := getenv(envPrefix + name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = n
		return nil
	}
	duration := func(name string, dst *time.Duration) error {
		v := getenv(envPrefix + name)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, name, err)
		}
		*dst = d
		return nil
	}

	str("API_URL", &cfg.APIURL)
	str("DB", &cfg.DBPath)
	str("LOG", &cfg.LogPath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("CACHE_DIR", &cfg.CacheDir)

	if v := getenv(envPrefix + "USER_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sUSER_ID: %w", envPrefix, err)
		}
		cfg.Identity.UserID = id
	}
	str("FIRST_NAME", &cfg.Identity.FirstName)
	str("LAST_NAME", &cfg.Identity.LastName)
	str("USERNAME", &cfg.Identity.Username)
	str("COLOR_SCHEME", &cfg.Identity.ColorScheme)
	str("INIT_DATA", &cfg.Identity.InitData)

	if err := integer("BATCH_SIZE", &cfg.Drill.BatchSize); err != nil {
		return err
	}
	if err := integer("REVIEW_WINDOW", &cfg.Drill.ReviewWindow); err != nil {
		return err
	}
	if err := duration("CORRECT_DELAY", &cfg.Drill.CorrectDelay); err != nil {
		return err
	}
	if err := duration("WRONG_QUIZ_DELAY", &cfg.Drill.WrongQuizDelay); err != nil {
		return err
	}
	if err := duration("WRONG_TEXT_REVEAL", &cfg.Drill.WrongTextReveal); err != nil {
		return err
	}

	if v := getenv(envPrefix + "AUDIO_PLAYER"); v != "" {
		cfg.Audio.Player = strings.Fields(v)
	}
	if v := getenv(envPrefix + "SPEECH"); v != "" {
		cfg.Audio.Speech = strings.Fields(v)
	}

	str("COACH_PROVIDER", &cfg.Coach.Provider)
	str("ANTHROPIC_API_KEY", &cfg.Coach.AnthropicKey)
	str("ANTHROPIC_MODEL", &cfg.Coach.AnthropicModel)
	str("OPENAI_API_KEY", &cfg.Coach.OpenAIKey)
	str("OPENAI_MODEL", &cfg.Coach.OpenAIModel)
	str("OPENAI_BASE_URL", &cfg.Coach.OpenAIBaseURL)
	str("GEMINI_API_KEY", &cfg.Coach.GeminiKey)
	str("GEMINI_MODEL", &cfg.Coach.GeminiModel)

	return nil
}

// Validate checks the values the drill cannot run without.
func (c Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("api_url is required")
	}
	if c.Drill.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.Drill.BatchSize)
	}
	if c.Drill.ReviewWindow <= 0 {
		return fmt.Errorf("review_window must be positive, got %d", c.Drill.ReviewWindow)
	}
	if c.Drill.CorrectDelay <= 0 || c.Drill.WrongQuizDelay <= 0 || c.Drill.WrongTextReveal <= 0 {
		return errors.New("feedback delays must be positive")
	}
	switch c.Coach.Provider {
	case "", "auto", "anthropic", "openai", "gemini", "mock":
	default:
		return fmt.Errorf("unknown coach provider: %q", c.Coach.Provider)
	}
	return nil
}
