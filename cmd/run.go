package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/abhisek/vocabdrill/internal/api"
	"github.com/abhisek/vocabdrill/internal/app"
	"github.com/abhisek/vocabdrill/internal/audio"
	"github.com/abhisek/vocabdrill/internal/coach"
	"github.com/abhisek/vocabdrill/internal/config"
	"github.com/abhisek/vocabdrill/internal/drill"
	"github.com/abhisek/vocabdrill/internal/host"
	"github.com/abhisek/vocabdrill/internal/llm"
	"github.com/abhisek/vocabdrill/internal/logging"
	"github.com/abhisek/vocabdrill/internal/profile"
	"github.com/abhisek/vocabdrill/internal/screens/deps"
	"github.com/abhisek/vocabdrill/internal/store"
	"github.com/abhisek/vocabdrill/internal/words"
)

// startupTimeout bounds the profile load before the TUI opens. API calls
// carry no timeout of their own.
const startupTimeout = 15 * time.Second

// clock is replaceable for tests.
var clock = time.Now

// env is everything a command needs, opened from the config and flags.
type env struct {
	cfg      config.Config
	log      *slog.Logger
	store    *store.Store
	client   *api.Client
	identity host.Identity
	profiles *profile.Cache
	words    *words.Provider

	closers []io.Closer
}

// openEnv loads the config, applies the persistent flags and opens the
// log, the journal and the API client. The profile is not loaded.
func openEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.NewLoader(path).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if u, _ := cmd.Flags().GetString("api"); u != "" {
		cfg.APIURL = u
	}
	if id, _ := cmd.Flags().GetInt64("user"); id != 0 {
		cfg.Identity.UserID = id
		cfg.Identity.InitData = ""
	}

	e := &env{cfg: cfg}

	log, closer, err := logging.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging to file disabled:", err)
		log = logging.Discard()
	} else {
		e.closers = append(e.closers, closer)
	}
	e.log = log

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, st)

	identity, err := host.Resolve(cfg.Identity)
	if err != nil {
		log.Warn("host identity unreadable, using placeholder", "err", err)
	}
	e.identity = identity

	e.client = api.NewClient(cfg.APIURL)
	journal := st.EventRepo()
	e.profiles = profile.NewCache(e.client, log, journal)
	e.words = words.NewProvider(e.client, log, journal)
	return e, nil
}

// loadProfile fetches or creates the learner's profile.
func (e *env) loadProfile(ctx context.Context) profile.Status {
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	_, status := e.profiles.LoadOrCreate(ctx, e.identity)
	e.log.Info("profile ready", "user_id", e.identity.User.ID, "status", status.String())
	return status
}

// Close releases the journal and the log file, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i].Close()
	}
	e.closers = nil
}

// newCoach builds the word coach. A missing or broken provider yields a
// disabled coach rather than an error.
func (e *env) newCoach(ctx context.Context) *coach.Coach {
	cfg := e.cfg.Coach
	if cfg.Provider == "" {
		return coach.New(nil, coach.DefaultConfig())
	}

	lc := llm.FromCoach(cfg)
	if cfg.Provider == "auto" {
		found, ok := llm.Discover(lc, os.Getenv)
		if !ok {
			e.log.Info("coach provider auto: no API key found")
			return coach.New(nil, coach.DefaultConfig())
		}
		lc = found
	}

	provider, err := llm.NewProvider(ctx, lc, e.store.EventRepo(), e.log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Word coach not configured:", err)
		fmt.Fprintln(os.Stderr, "Example sentences will be unavailable.")
		return coach.New(nil, coach.DefaultConfig())
	}

	cc := coach.DefaultConfig()
	cc.Timeout = lc.Timeout
	return coach.New(provider, cc)
}

// screenDeps assembles the dependencies shared by the screens.
func (e *env) screenDeps(ctx context.Context) *deps.Deps {
	journal := e.store.EventRepo()
	svc := drill.NewService(e.profiles, e.words, journal, e.log, drill.Config{
		BatchSize:    e.cfg.Drill.BatchSize,
		ReviewWindow: e.cfg.Drill.ReviewWindow,
	})
	player := audio.NewPlayer(afero.NewOsFs(), e.cfg.CacheDir, e.cfg.Audio, audio.ExecRunner{}, e.log)

	return &deps.Deps{
		Profiles: e.profiles,
		Drill:    svc,
		Journal:  journal,
		Audio:    player,
		Coach:    e.newCoach(ctx),
		Config:   e.cfg.Drill,
		Log:      e.log,
	}
}

// runApp opens the environment and launches the TUI. The profile loads
// behind the splash screen.
func runApp(cmd *cobra.Command, start drill.Mode) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{
		Deps:        e.screenDeps(ctx),
		Scheme:      string(e.identity.ColorScheme),
		Start:       start,
		LoadProfile: e.loadProfile,
	})
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then VOCABDRILL_DB env var, then the configured path.
func resolveDBPath(cmd *cobra.Command, fallback string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return store.DefaultDBPath(p)
	}
	return store.DefaultDBPath(fallback)
}
