package app

import (
	"context"
	"log"
	"time"

	"local-link/internal/config"
	"local-link/internal/database"
	"local-link/internal/database/migration"
	dbpostgres "local-link/internal/database/postgres"
	"local-link/internal/database/seeder"
	"local-link/internal/domain/catalog"
	"local-link/internal/infrastructure/cache"
	"local-link/internal/pkg/jwt"
	"local-link/internal/repository"
	"local-link/internal/usecase"
	"local-link/internal/ws"
)

// Container wires the catalog store, repositories, cache and usecases
// once at startup. Route registration only consumes it.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Store *catalog.Store
	Hub   *ws.Hub

	JWT     jwt.Service
	Auth    usecase.AuthUsecase
	Search  usecase.SearchUsecase
	Listing usecase.ListingUsecase
	Booking usecase.BookingUsecase
	Profile usecase.ProfileUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.Default()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		db          database.DB
		catalogRepo repository.CatalogRepository
		accountRepo repository.AccountRepository
	)

	if cfg.Database.Enabled() {
		conn, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		db = conn

		if err := (migration.Runner{Dir: cfg.Database.MigrationsDir}).Run(ctx, db); err != nil {
			conn.Close()
			return nil, err
		}

		pgCatalog := repository.NewPostgresCatalogRepository(db)
		pgAccounts := repository.NewPostgresAccountRepository(db)
		if err := pgCatalog.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		if err := pgAccounts.EnsureSchema(ctx); err != nil {
			conn.Close()
			return nil, err
		}
		if err := seedIfEmpty(ctx, pgCatalog); err != nil {
			conn.Close()
			return nil, err
		}
		catalogRepo = pgCatalog
		accountRepo = pgAccounts
	} else {
		catalogRepo = repository.NewMemoryCatalogRepository(defaultSeed())
		accountRepo = repository.NewMemoryAccountRepository()
	}

	participants, err := catalogRepo.LoadAll(ctx)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}
	store := catalog.NewStore(participants)

	redisCache := cache.NewRedis(logger)
	searchTTL := cache.DefaultTTLFromEnv()

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	onListing := func(ev usecase.ListingCreatedEvent) {
		ws.NotifyListingCreated(string(ev.Type), ev.Title, ev.Neighbor)
	}
	onConfirmed := func(ev usecase.ConfirmedEvent) {
		ws.NotifyBookingConfirmed(ev.BookingID.String(), ev.ProviderName, ev.SkillName, string(ev.Method))
	}

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Store:  store,
		Hub:    hub,
		JWT:    jwtSvc,

		Auth:    usecase.NewAuthUsecase(accountRepo, store, catalogRepo, jwtSvc, logger),
		Search:  usecase.NewSearchUsecase(store, redisCache, searchTTL, logger),
		Listing: usecase.NewListingUsecase(store, catalogRepo, onListing, logger),
		Booking: usecase.NewBookingUsecase(store, catalogRepo, cfg.Booking.ConfirmDelay, onConfirmed, logger),
		Profile: usecase.NewProfileUsecase(store, catalogRepo, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

func defaultSeed() []catalog.Participant {
	return append(seeder.Neighborhood(), seeder.GuestParticipant())
}

// seedIfEmpty plants the demo neighborhood into a fresh database so a
// first run has something to browse.
func seedIfEmpty(ctx context.Context, repo *repository.PostgresCatalogRepository) error {
	existing, err := repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, p := range defaultSeed() {
		if err := repo.Insert(ctx, p, false); err != nil {
			return err
		}
	}
	return nil
}
