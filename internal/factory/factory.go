package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gorilla/sessions"
	goredis "github.com/redis/go-redis/v9"

	"github.com/subhajit/appointment-booking/internal/config"
	"github.com/subhajit/appointment-booking/internal/services/auth"
	"github.com/subhajit/appointment-booking/internal/services/doctor"
	"github.com/subhajit/appointment-booking/internal/session"
	"github.com/subhajit/appointment-booking/internal/storage"
	"github.com/subhajit/appointment-booking/internal/storage/memory"
	redisstorage "github.com/subhajit/appointment-booking/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	Config *config.Config

	// Session storage
	SessionStore sessions.Store
	Sessions     *session.Manager

	// Doctor directory storage
	DoctorRepository storage.DoctorRepository

	// Services
	Verifier      auth.Verifier
	AuthService   *auth.Service
	DoctorService *doctor.Service

	redisClient *goredis.Client
	closers     []io.Closer
}

// New creates a new application with all dependencies wired
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	// Use no-op logger if not provided
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	verifier, err := NewVerifier(cfg.Login)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:      cfg,
		Verifier:    verifier,
		AuthService: auth.New(verifier, logger),
	}

	// One client serves every Redis-backed component
	if cfg.UsesRedis() {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		client, err := redisstorage.Connect(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		app.redisClient = client
		app.closers = append(app.closers, client)
	}

	store, err := app.newSessionStore(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.SessionStore = store
	app.Sessions = session.NewManager(store, session.Options{
		Name:     session.DefaultName,
		MaxAge:   cfg.Session.MaxAge,
		Secure:   cfg.Session.CookieSecure,
		SameSite: cfg.Session.SameSite(),
	})

	repo, err := app.newDoctorRepository(cfg)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.DoctorRepository = repo
	app.DoctorService = doctor.New(repo, logger)

	logger.Info("application wired",
		slog.String("session_store", cfg.Session.Store),
		slog.Bool("session_encrypted", cfg.Session.EncryptionKey != ""),
		slog.String("storage_type", cfg.StorageType),
		slog.String("verifier", fmt.Sprintf("%T", verifier)),
	)

	return app, nil
}

// NewVerifier picks the credential verifier for the login configuration.
// A configured password hash selects bcrypt; otherwise the literal pair is used.
func NewVerifier(cfg config.LoginConfig) (auth.Verifier, error) {
	if cfg.PasswordHash != "" {
		return auth.NewBcryptVerifier(cfg.Username, cfg.PasswordHash)
	}
	return auth.NewStaticVerifier(cfg.Username, cfg.Password), nil
}

func (a *App) newSessionStore(cfg *config.Config) (sessions.Store, error) {
	keyPairs := cfg.Session.KeyPairs()

	switch cfg.Session.Store {
	case config.StoreTypeCookie:
		store := sessions.NewCookieStore(keyPairs...)
		store.MaxAge(cfg.Session.MaxAge)
		return store, nil
	case config.StoreTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.MaxAge = cfg.Session.MaxAge
		return redisstorage.NewWithClient(a.redisClient, redisCfg, keyPairs...), nil
	default:
		return nil, errors.New("invalid session store: must be 'cookie' or 'redis'")
	}
}

func (a *App) newDoctorRepository(cfg *config.Config) (storage.DoctorRepository, error) {
	switch cfg.StorageType {
	case config.StorageTypeMemory:
		return memory.New(), nil
	case config.StorageTypeRedis:
		return redisstorage.NewDoctorRepository(a.redisClient), nil
	default:
		return nil, errors.New("invalid storage type: must be 'memory' or 'redis'")
	}
}

// Close releases connections held by the application
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
