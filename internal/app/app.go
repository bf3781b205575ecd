package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/giladtamam/football-insights-sub001/external/apifootball"
	"github.com/giladtamam/football-insights-sub001/external/oddsapi"
	"github.com/giladtamam/football-insights-sub001/internal/config"
	"github.com/giladtamam/football-insights-sub001/internal/domain/country"
	"github.com/giladtamam/football-insights-sub001/internal/domain/league"
	"github.com/giladtamam/football-insights-sub001/internal/domain/season"
	"github.com/giladtamam/football-insights-sub001/internal/domain/standing"
	"github.com/giladtamam/football-insights-sub001/internal/domain/team"
	"github.com/giladtamam/football-insights-sub001/internal/infrastructure/account/google"
	"github.com/giladtamam/football-insights-sub001/internal/infrastructure/jobqueue"
	cacherepo "github.com/giladtamam/football-insights-sub001/internal/infrastructure/repository/cache"
	"github.com/giladtamam/football-insights-sub001/internal/infrastructure/repository/postgres"
	"github.com/giladtamam/football-insights-sub001/internal/interfaces/httpapi"
	"github.com/giladtamam/football-insights-sub001/internal/platform/auth"
	basecache "github.com/giladtamam/football-insights-sub001/internal/platform/cache"
	idgen "github.com/giladtamam/football-insights-sub001/internal/platform/id"
	"github.com/giladtamam/football-insights-sub001/internal/platform/logging"
	"github.com/giladtamam/football-insights-sub001/internal/platform/resilience"
	"github.com/giladtamam/football-insights-sub001/internal/usecase"
)

// NewHTTPServer wires repositories, providers and services into the HTTP
// router. The returned close func releases the database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	pgCountryRepo := postgres.NewCountryRepository(db)
	pgLeagueRepo := postgres.NewLeagueRepository(db)
	pgSeasonRepo := postgres.NewSeasonRepository(db)
	pgTeamRepo := postgres.NewTeamRepository(db)
	pgStandingRepo := postgres.NewStandingRepository(db)

	var (
		countryRepo  country.Repository  = pgCountryRepo
		leagueRepo   league.Repository   = pgLeagueRepo
		seasonRepo   season.Repository   = pgSeasonRepo
		teamRepo     team.Repository     = pgTeamRepo
		standingRepo standing.Repository = pgStandingRepo
	)
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		countryRepo = cacherepo.NewCountryRepository(pgCountryRepo, store)
		leagueRepo = cacherepo.NewLeagueRepository(pgLeagueRepo, store)
		seasonRepo = cacherepo.NewSeasonRepository(pgSeasonRepo, store)
		teamRepo = cacherepo.NewTeamRepository(pgTeamRepo, store)
		standingRepo = cacherepo.NewStandingRepository(pgStandingRepo, store)
	}

	fixtureRepo := postgres.NewFixtureRepository(db)
	snapshotRepo := postgres.NewOddsSnapshotRepository(db)
	userRepo := postgres.NewUserRepository(db)
	noteRepo := postgres.NewNoteRepository(db)
	favoriteRepo := postgres.NewFavoriteRepository(db)
	screenRepo := postgres.NewScreenRepository(db)
	selectionRepo := postgres.NewSelectionRepository(db)
	alertRepo := postgres.NewAlertRepository(db)
	dispatchRepo := postgres.NewJobDispatchRepository(db)

	statsClient := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.StatsAPIBaseURL,
		APIKey:     cfg.StatsAPIKey,
		Timeout:    cfg.StatsAPITimeout,
		MaxRetries: cfg.StatsAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.StatsAPICircuitEnabled,
			FailureThreshold: cfg.StatsAPICircuitFailureCount,
			OpenTimeout:      cfg.StatsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsAPICircuitHalfOpenMaxReq,
		},
	})

	oddsClient := oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL:    cfg.OddsAPIBaseURL,
		APIKey:     cfg.OddsAPIKey,
		Regions:    cfg.OddsAPIRegions,
		Timeout:    cfg.OddsAPITimeout,
		MaxRetries: cfg.OddsAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OddsAPICircuitEnabled,
			FailureThreshold: cfg.OddsAPICircuitFailureCount,
			OpenTimeout:      cfg.OddsAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OddsAPICircuitHalfOpenMaxReq,
		},
	})

	ids := idgen.NewRandomGenerator()

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		closeDB(db, logger)
		return nil, nil, fmt.Errorf("build token manager: %w", err)
	}
	googleClient := google.NewClient(
		&http.Client{Timeout: cfg.GoogleTimeout},
		cfg.GoogleTokenInfoURL,
		cfg.GoogleClientID,
		cfg.GoogleCacheTTL,
		logger,
	)
	authSvc := usecase.NewAuthService(userRepo, tokens, googleClient, ids, logger)

	referenceSvc := usecase.NewReferenceQueryService(countryRepo, leagueRepo, seasonRepo, teamRepo, standingRepo, logger)
	fixtureSvc := usecase.NewFixtureService(fixtureRepo, logger)
	refSyncSvc := usecase.NewReferenceSyncService(statsClient, countryRepo, leagueRepo, seasonRepo, teamRepo, fixtureRepo, standingRepo, logger)
	oddsSyncSvc := usecase.NewOddsSyncService(oddsClient, fixtureRepo, snapshotRepo, cfg.OddsSportKeyByLeague, logger)
	bulkSyncSvc := usecase.NewBulkSyncService(refSyncSvc, oddsSyncSvc, logger)

	noteSvc := usecase.NewNoteService(noteRepo, ids, logger)
	favoriteSvc := usecase.NewFavoriteService(favoriteRepo, ids, logger)
	screenSvc := usecase.NewScreenService(screenRepo, ids, logger)
	selectionSvc := usecase.NewSelectionService(selectionRepo, fixtureRepo, ids, logger)
	alertSvc := usecase.NewAlertService(alertRepo, fixtureRepo, ids, logger)

	coordinator := usecase.NewLeagueSyncCoordinator(refSyncSvc, oddsSyncSvc, alertSvc, seasonRepo, logger)

	queue := usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
		}, logger)
	}

	orchestrator := usecase.NewJobOrchestratorService(
		leagueRepo,
		fixtureRepo,
		coordinator,
		queue,
		dispatchRepo,
		usecase.JobOrchestratorConfig{
			ScheduleInterval: cfg.JobScheduleInterval,
			LiveInterval:     cfg.JobLiveInterval,
			PreKickoffLead:   cfg.JobPreKickoffLead,
		},
		logger,
	)

	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		AuthService:      authSvc,
		ReferenceService: referenceSvc,
		FixtureService:   fixtureSvc,
		OddsSyncService:  oddsSyncSvc,
		RefSyncService:   refSyncSvc,
		BulkSyncService:  bulkSyncSvc,
		NoteService:      noteSvc,
		FavoriteService:  favoriteSvc,
		ScreenService:    screenSvc,
		SelectionService: selectionSvc,
		AlertService:     alertSvc,
		JobOrchestrator:  orchestrator,
		JobDispatchRepo:  dispatchRepo,
		Logger:           logger,
	})
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		closeDB(db, logger)
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if err := db.Close(); err != nil {
		logger.Warn("close database", "error", err)
	}
}
