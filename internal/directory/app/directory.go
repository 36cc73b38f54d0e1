package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/memory"
	redisstore "github.com/aussiebroadwan/directory/internal/directory/store/drivers/redis"
	"github.com/aussiebroadwan/directory/internal/directory/store/drivers/sqlite"
	"github.com/aussiebroadwan/directory/pkg/idx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
	"github.com/go-redis/redis/v8"
)

// Directory is the loaded store and both directory services, shared by the
// HTTP server and the CLI.
type Directory struct {
	Store store.Store
	Roles *service.RolesService
	Users *service.UserService
}

// OpenDirectory opens the configured store, loads both collections and
// applies the seed file when one is configured.
func OpenDirectory(ctx context.Context, cfg Config, logger *slog.Logger) (*Directory, error) {
	ctx = slogx.WithContext(ctx, logger)

	newID, err := idx.Generator(idx.Format(cfg.IDFormat))
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	roleRepo := store.NewCollection[domain.Role](st, store.KeyRoles, newID)
	userRepo := store.NewCollection[domain.User](st, store.KeyUsers, newID)

	d := &Directory{
		Store: st,
		Roles: service.NewRolesService(roleRepo),
		Users: service.NewUserService(userRepo, roleRepo),
	}

	if err := d.Roles.Load(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	if err := d.Users.Load(ctx); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	if cfg.SeedFile != "" {
		data, err := service.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		seeder := &service.SeedService{Roles: d.Roles, Users: d.Users}
		if err := seeder.Seed(ctx, data); err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to seed directory: %w", err)
		}
	}

	return d, nil
}

func (d *Directory) Close() error { return d.Store.Close() }

// openStore initializes the configured driver and applies migrations.
func openStore(ctx context.Context, cfg Config, logger *slog.Logger) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.StoreDriver {
	case DriverSQLite:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		st, err = sqlite.NewStore(dsn)
	case DriverRedis:
		st, err = redisstore.Dial(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Redis.Prefix)
	case DriverMemory:
		st = memory.NewStore()
	default:
		err = fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", cfg.StoreDriver, err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply store migrations: %w", err)
	}

	logger.Info("store ready", slog.String("driver", cfg.StoreDriver))
	return st, nil
}
