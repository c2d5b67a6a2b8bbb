package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BearBump/DVCPortal/config"
	"github.com/BearBump/DVCPortal/data"
	portalapi "github.com/BearBump/DVCPortal/internal/api/portal_api"
	"github.com/BearBump/DVCPortal/internal/broker/kafka"
	"github.com/BearBump/DVCPortal/internal/cache"
	"github.com/BearBump/DVCPortal/internal/cache/lrucache"
	"github.com/BearBump/DVCPortal/internal/cache/rediscache"
	"github.com/BearBump/DVCPortal/internal/codegen"
	"github.com/BearBump/DVCPortal/internal/logging"
	"github.com/BearBump/DVCPortal/internal/services/catalog"
	"github.com/BearBump/DVCPortal/internal/services/elections"
	"github.com/BearBump/DVCPortal/internal/services/submissions"
	"github.com/BearBump/DVCPortal/internal/services/tracking"
	"github.com/BearBump/DVCPortal/internal/storage/memstore"
	"github.com/BearBump/DVCPortal/internal/storage/pgtracking"
	"github.com/redis/go-redis/v9"
)

type portalAPIApp struct {
	ctx     context.Context
	cancel  context.CancelFunc
	opts    portalAPIOpts
	api     *portalapi.PortalAPI
	closers []func()
}

// trackingRepository is a tracking.Repository that can report its size.
type trackingRepository interface {
	tracking.Repository
	CountRecords(ctx context.Context) (int, error)
}

// portalFactories are the infrastructure seams of bootstrap.
type portalFactories struct {
	openPostgres func(ctx context.Context, connString string) (*pgtracking.Storage, error)
}

func defaultPortalFactories() portalFactories {
	return portalFactories{
		openPostgres: func(ctx context.Context, connString string) (*pgtracking.Storage, error) {
			return mustOpenPostgresWithRetry(ctx, connString, 60*time.Second), nil
		},
	}
}

func mustBootstrapPortalAPI() *portalAPIApp {
	cfg, err := config.LoadConfig(os.Getenv("configPath"))
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}

	log := logging.New(os.Stdout, cfg.Portal.LogLevel)
	slog.SetDefault(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	api, closers, err := buildPortalAPI(ctx, cfg, log, defaultPortalFactories())
	if err != nil {
		cancel()
		panic(err)
	}

	httpAddr := cfg.Portal.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":3000"
	}

	return &portalAPIApp{
		ctx:    ctx,
		cancel: cancel,
		opts: portalAPIOpts{
			httpAddr:    httpAddr,
			grpcAddr:    cfg.Portal.GRPCAddr,
			swaggerPath: os.Getenv("swaggerPath"),
		},
		api:     api,
		closers: closers,
	}
}

// buildPortalAPI wires storage, caches and the event producer by config.
// Empty hosts select the in-process variants.
func buildPortalAPI(ctx context.Context, cfg *config.Config, log *slog.Logger, f portalFactories) (*portalapi.PortalAPI, []func(), error) {
	var closers []func()

	cacheTTL := time.Duration(cfg.Portal.TrackingCacheTTLSeconds) * time.Second
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	lruSize := cfg.Portal.LRUCacheSize
	if lruSize <= 0 {
		lruSize = 1024
	}
	submitPerMinute := int64(cfg.Portal.SubmitRateLimitPerMinute)
	if submitPerMinute <= 0 {
		submitPerMinute = 30
	}
	topic := cfg.Kafka.SubmissionsTopicName
	if topic == "" {
		topic = "portal.submissions"
	}

	ds, err := data.LoadDataset(cfg.Portal.ServicesDataPath)
	if err != nil {
		return nil, nil, err
	}
	ed, err := data.LoadElections(cfg.Portal.ElectionsDataPath)
	if err != nil {
		return nil, nil, err
	}

	gen, err := codegen.New(cfg.Portal.NodeID)
	if err != nil {
		return nil, nil, err
	}

	var repo trackingRepository = memstore.NewTrackingStore()
	backend := "memory"
	if cfg.Database.Enabled() {
		st, err := f.openPostgres(ctx, cfg.Database.ConnString())
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, st.Close)
		repo = st
		backend = "postgres"
	}
	records, err := repo.CountRecords(ctx)
	if err != nil {
		closeAll(closers)
		return nil, nil, err
	}
	log.Info("tracking registry ready", "backend", backend, "records", records)

	var (
		bc      cache.BytesCache
		limiter portalapi.RateLimiter
	)
	if cfg.Redis.Enabled() {
		rc := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
		closers = append(closers, func() { _ = rc.Close() })
		rcache := rediscache.NewWithClient(rc)
		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		if err := rcache.Ping(pingCtx); err != nil {
			// кэш и лимитер работают в режиме fail-open, старт не блокируем
			log.Warn("redis unreachable", "addr", cfg.Redis.Addr(), "err", err)
		}
		cancelPing()
		bc = rcache
		limiter = rediscache.NewRateLimiterWithClient(rc)
		log.Info("redis cache enabled", "addr", cfg.Redis.Addr())
	} else {
		bc = lrucache.New(lruSize, cacheTTL)
		log.Info("in-process lru cache enabled", "size", lruSize)
	}

	var (
		subPub submissions.Publisher
		elPub  elections.Publisher
	)
	if cfg.Kafka.Enabled() {
		p := kafka.NewProducer(cfg.Kafka.Brokers())
		closers = append(closers, func() { _ = p.Close() })
		pub := kafka.NewSubmissionsPublisher(p, topic)
		subPub, elPub = pub, pub
		log.Info("submission events enabled", "brokers", cfg.Kafka.Brokers(), "topic", topic)
	}

	cat := catalog.New(memstore.NewCatalog(ds))
	trk := tracking.New(repo, gen, bc, cacheTTL)
	el, err := elections.New(ed, gen, elPub)
	if err != nil {
		closeAll(closers)
		return nil, nil, err
	}

	api := portalapi.New(portalapi.Deps{
		Catalog:         cat,
		Tracking:        trk,
		Submissions:     submissions.New(cat, trk, gen, subPub),
		Elections:       el,
		Limiter:         limiter,
		SubmitPerMinute: submitPerMinute,
		TrustProxy:      cfg.Portal.TrustProxy,
		Logger:          log,
	})
	return api, closers, nil
}

func mustOpenPostgresWithRetry(ctx context.Context, connString string, wait time.Duration) *pgtracking.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgtracking.New(ctx, connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func closeAll(closers []func()) {
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}
}

func (a *portalAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	closeAll(a.closers)
}

func (a *portalAPIApp) Run() error {
	return runPortalAPI(a.ctx, a.opts, a.api)
}
