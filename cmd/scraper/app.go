package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/redis/go-redis/v9"

	"stallion/domain"
	"stallion/errors"
	"stallion/extractor"
	"stallion/infrastructure/storage"
	"stallion/internal"
	"stallion/parser"
	"stallion/repositories"
	"stallion/scraping"
	"stallion/services"
	"stallion/supabase"
)

const inspectEndpoint = "/inspect"

// app owns every long-lived handle of a command. Handles are opened on first use and closed
// in reverse order by Close.
type app struct {
	config  internal.Config
	log     *slog.Logger
	out     io.Writer
	clients supabase.Clients
	closers []func() error

	db        *badger.DB
	writer    *bluge.Writer
	stores    *stores
	fetcher   *scraping.Fetcher
	extractor *extractor.Extractor
}

type stores struct {
	horses    repositories.IHorseRepository
	relations repositories.IRelationRepository
	races     repositories.IRaceRepository
	rankings  repositories.IRankingRepository
}

func newApp(opts *rootOptions, out io.Writer) (*app, error) {
	config, err := internal.LoadConfig(opts.envFiles...)
	if err != nil {
		return nil, &configError{err}
	}
	level := config.LogLevel
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log := logs.GetLoggerFromString(level)

	clients, err := supabase.NewClients(config.Credentials(), log)
	if err != nil {
		return nil, &configError{fmt.Errorf("supabase clients: %w", err)}
	}
	return &app{config: config, log: log, out: out, clients: clients}, nil
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *app) badger(ctx context.Context) (*badger.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	options := badger.DefaultOptions(a.config.BadgerFilepath)
	if a.log.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	a.closers = append(a.closers, func() error {
		a.log.Debug("Closing BadgerDB...")
		return db.Close()
	})
	if a.config.InspectPort > 0 {
		a.log.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", a.config.InspectPort, inspectEndpoint))
		database.StartDebugServer(db, a.config.InspectPort, inspectEndpoint, inspectMapper)
	}
	a.db = db
	return db, nil
}

func (a *app) index() (repositories.HorseIndex, error) {
	if a.writer == nil {
		writer, err := bluge.OpenWriter(bluge.DefaultConfig(a.config.BlugeFilepath))
		if err != nil {
			return repositories.HorseIndex{}, fmt.Errorf("failed to open bluge writer: %w", err)
		}
		a.closers = append(a.closers, func() error {
			a.log.Debug("Closing Bluge...")
			return writer.Close()
		})
		a.writer = writer
	}
	return repositories.NewHorseIndex(a.writer, a.log), nil
}

// storage serves the repositories from PostgreSQL when a DSN is configured, from Supabase otherwise.
func (a *app) storage(ctx context.Context) (*stores, error) {
	if a.stores != nil {
		return a.stores, nil
	}
	if !a.config.UsePostgres() {
		a.log.Debug("Using Supabase storage", "endpoint", a.clients.URL)
		a.stores = &stores{
			horses:    storage.NewSupabaseHorseRepository(a.clients, a.log),
			relations: storage.NewSupabaseRelationRepository(a.clients.Service, a.log),
			races:     storage.NewSupabaseRaceRepository(a.clients.Service, a.log),
			rankings:  storage.NewSupabaseRankingRepository(a.clients.Service, a.log),
		}
		return a.stores, nil
	}

	var adapter storage.DBAdapter
	switch a.config.PostgresDriver {
	case internal.DriverSQLX:
		db, err := storage.NewSQLX(ctx, a.config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres connection: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		adapter = storage.NewSQLXAdapter(db)
	default:
		pool, err := storage.NewPGXPool(ctx, a.config.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("postgres connection: %w", err)
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		adapter = storage.NewPGXAdapter(pool)
	}
	store, err := storage.NewPostgresStore(adapter, a.log)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("postgres migration: %w", err)
	}
	a.log.Debug("Using PostgreSQL storage", "driver", a.config.PostgresDriver)
	a.stores = &stores{
		horses:    store.Horses(),
		relations: store.Relations(),
		races:     store.Races(),
		rankings:  store.Rankings(),
	}
	return a.stores, nil
}

// source is the shared fetcher, backed by the badger page cache unless PAGE_CACHE_TTL is 0.
func (a *app) source(ctx context.Context) (*scraping.Fetcher, error) {
	if a.fetcher != nil {
		return a.fetcher, nil
	}
	var opts []scraping.Option
	if a.config.PageCacheTTL > 0 {
		db, err := a.badger(ctx)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scraping.WithCache(repositories.NewPageCacheRepository(db, a.log, a.config.PageCacheTTL)))
	}
	a.fetcher = scraping.NewFetcher(a.config.Scraping(), a.log, opts...)
	return a.fetcher, nil
}

func (a *app) extract() (*extractor.Extractor, error) {
	if a.extractor != nil {
		return a.extractor, nil
	}
	keywords, err := parser.NewKeywords()
	if err != nil {
		return nil, err
	}
	a.extractor = extractor.New(keywords, a.log)
	return a.extractor, nil
}

// claims are shared through redis when REDIS_ADDR is set, kept in badger otherwise.
func (a *app) claims(ctx context.Context) (repositories.IClaimRepository, error) {
	if a.config.RedisAddr == "" {
		db, err := a.badger(ctx)
		if err != nil {
			return nil, err
		}
		return repositories.NewClaimRepository(db, a.log, a.config.ClaimTTL), nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: a.config.RedisAddr})
	a.closers = append(a.closers, rdb.Close)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis %s: %w", a.config.RedisAddr, err)
	}
	return repositories.NewRedisClaimRepository(rdb, a.log, a.config.ClaimTTL), nil
}

func (a *app) journal(ctx context.Context) (repositories.RunJournalRepository, error) {
	db, err := a.badger(ctx)
	if err != nil {
		return repositories.RunJournalRepository{}, err
	}
	return repositories.NewRunJournalRepository(db, a.log), nil
}

func (a *app) horseService(ctx context.Context) (*services.HorseService, error) {
	source, err := a.source(ctx)
	if err != nil {
		return nil, err
	}
	ex, err := a.extract()
	if err != nil {
		return nil, err
	}
	s, err := a.storage(ctx)
	if err != nil {
		return nil, err
	}
	index, err := a.index()
	if err != nil {
		return nil, err
	}
	return services.NewHorseService(a.log, source, ex, s.horses, s.relations, index), nil
}

func (a *app) batchService(ctx context.Context) (*services.BatchService, error) {
	horses, err := a.horseService(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := a.claims(ctx)
	if err != nil {
		return nil, err
	}
	journal, err := a.journal(ctx)
	if err != nil {
		return nil, err
	}
	list := services.NewHorseListService(a.log, a.fetcher, a.extractor)
	return services.NewBatchService(a.log, list, horses, a.stores.horses, claims, journal, a.out), nil
}

func (a *app) raceService(ctx context.Context) (*services.RaceService, error) {
	source, err := a.source(ctx)
	if err != nil {
		return nil, err
	}
	ex, err := a.extract()
	if err != nil {
		return nil, err
	}
	s, err := a.storage(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewRaceService(a.log, source, ex, s.races), nil
}

func (a *app) rankingService(ctx context.Context) (*services.RankingService, error) {
	source, err := a.source(ctx)
	if err != nil {
		return nil, err
	}
	ex, err := a.extract()
	if err != nil {
		return nil, err
	}
	s, err := a.storage(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewRankingService(a.log, source, ex, s.rankings), nil
}

// inspectMapper describes the badger entries written by the scraper in the debug inspector.
func inspectMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	switch {
	case strings.HasPrefix(key, repositories.RunKeyPrefix):
		row.Type = "RUN"
		var report domain.BatchReport
		if err := json.Unmarshal(val, &report); err != nil {
			row.Detail = "Error: unmarshal failed"
			return row
		}
		row.EntityID = report.RunID.String()
		row.Timestamp = report.StartedAt.Format("15:04:05")
		row.Detail = fmt.Sprintf("total %d, ok %d, failed %d, skipped %d",
			report.Total, len(report.Success), len(report.Failed), len(report.Skipped))
	case strings.HasPrefix(key, "claim:"):
		row.Type = "CLAIM"
		row.Detail = string(val)
	case strings.HasPrefix(key, "page:"):
		row.Type = "PAGE"
		row.Detail = fmt.Sprintf("%d bytes", len(val))
	}
	return row
}
