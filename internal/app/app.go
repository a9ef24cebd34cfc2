package app

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/humanbelnik/kinoswap/matchroom/internal/config"
	http_init "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/init"
	http_access_middleware "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/middleware/access"
	http_metrics_middleware "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/middleware/metrics"
	http_session_middleware "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/middleware/session"
	http_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/room"
	http_swipe "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/http/swipe"
	ws_room "github.com/humanbelnik/kinoswap/matchroom/internal/delivery/ws/room"
	infra_catalog "github.com/humanbelnik/kinoswap/matchroom/internal/infra/catalog"
	infra_memory "github.com/humanbelnik/kinoswap/matchroom/internal/infra/memory"
	infra_pg_init "github.com/humanbelnik/kinoswap/matchroom/internal/infra/postgres/init"
	infra_postgres_match "github.com/humanbelnik/kinoswap/matchroom/internal/infra/postgres/match"
	infra_postgres_movie "github.com/humanbelnik/kinoswap/matchroom/internal/infra/postgres/movie"
	infra_postgres_room "github.com/humanbelnik/kinoswap/matchroom/internal/infra/postgres/room"
	infra_postgres_swipe "github.com/humanbelnik/kinoswap/matchroom/internal/infra/postgres/swipe"
	infra_qdrant_catalog "github.com/humanbelnik/kinoswap/matchroom/internal/infra/qdrant/catalog"
	infra_redis_init "github.com/humanbelnik/kinoswap/matchroom/internal/infra/redis/init"
	infra_session_cache "github.com/humanbelnik/kinoswap/matchroom/internal/infra/redis/session"
	infra_redis_topic "github.com/humanbelnik/kinoswap/matchroom/internal/infra/redis/topic"
	"github.com/humanbelnik/kinoswap/matchroom/internal/pkg/keylock"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/eventbus"
	"github.com/humanbelnik/kinoswap/matchroom/internal/service/identity"
	usecase_match "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/match"
	usecase_room "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/room"
	usecase_swipe "github.com/humanbelnik/kinoswap/matchroom/internal/usecase/swipe"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"
)

type catalog interface {
	usecase_room.Catalog
	http_room.MovieLookup
}

type repositories struct {
	rooms    usecase_room.RoomRepository
	progress usecase_room.ProgressReader
	swipes   usecase_swipe.SwipeRepository
	likes    usecase_match.LikeRepository
	matches  usecase_match.MatchRepository
}

// connections are opened lazily, only for the drivers that need them.
type connections struct {
	cfg   *config.Config
	pg    *sqlx.DB
	redis *redis.Client
}

func (c *connections) postgres() *sqlx.DB {
	if c.pg == nil {
		c.pg = infra_pg_init.MustEstablishConn(c.cfg.Postgres)
		if err := infra_pg_init.Migrate(context.Background(), c.pg); err != nil {
			log.Fatal(err)
		}
	}
	return c.pg
}

func (c *connections) redisClient() *redis.Client {
	if c.redis == nil {
		c.redis = infra_redis_init.MustEstablishConn(c.cfg.Redis)
	}
	return c.redis
}

func (c *connections) close() {
	if c.pg != nil {
		_ = c.pg.Close()
	}
	if c.redis != nil {
		_ = c.redis.Close()
	}
}

func Go(cfg *config.Config) {
	slog.SetDefault(newLogger(cfg.LogLevel))

	conns := &connections{cfg: cfg}
	defer conns.close()

	repos := newRepositories(cfg, conns)
	movies := newCatalog(cfg, conns)
	bus := newBus(cfg, conns)
	sessions := identity.New(newSessionCache(cfg, conns), cfg.Room.SessionTTL)

	roomLocks := keylock.New[uuid.UUID]()

	matchUC := usecase_match.New(repos.likes, repos.matches, bus)
	swipeUC := usecase_swipe.New(repos.rooms, repos.swipes, matchUC, bus, usecase_swipe.WithRoomLocks(roomLocks))
	roomUC := usecase_room.New(
		repos.rooms,
		movies,
		bus,
		repos.progress,
		repos.matches,
		usecase_room.WithLocks(roomLocks),
		usecase_room.WithCodeAttempts(cfg.Room.CodeAttempts),
		usecase_room.WithJoinRetries(cfg.Room.JoinRetries),
	)

	sessionMiddleware := http_session_middleware.New(sessions)

	controllerPool := http_init.NewControllerPool(
		http_metrics_middleware.Metrics(),
		http_access_middleware.ReadOnly(cfg.HTTP.Mode),
	)
	controllerPool.Add(http_room.New(roomUC, sessions, sessionMiddleware, movies))
	controllerPool.Add(http_swipe.New(swipeUC, matchUC, sessionMiddleware))
	controllerPool.Add(ws_room.NewController(roomUC, sessions))
	controllerPool.Register()

	if err := run(cfg, controllerPool.Handler()); err != nil {
		log.Fatal(err)
	}
}

// run serves until SIGINT/SIGTERM, then drains in-flight requests within HTTP.ShutdownTimeout.
func run(cfg *config.Config, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: handler,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server started", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		slog.Info("http server shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func newRepositories(cfg *config.Config, conns *connections) repositories {
	switch cfg.Drivers.Store {
	case "postgres":
		db := conns.postgres()
		swipes := infra_postgres_swipe.New(db)
		matches := infra_postgres_match.New(db)
		return repositories{
			rooms:    infra_postgres_room.New(db),
			progress: swipes,
			swipes:   swipes,
			likes:    matches,
			matches:  matches,
		}
	default:
		store := infra_memory.New()
		return repositories{
			rooms:    store,
			progress: store,
			swipes:   store,
			likes:    store,
			matches:  store,
		}
	}
}

func newCatalog(cfg *config.Config, conns *connections) catalog {
	static := infra_catalog.NewStatic(cfg.Room.DeckSize)

	switch cfg.Drivers.Catalog {
	case "postgres":
		repo := infra_postgres_movie.New(conns.postgres(), cfg.Room.DeckSize)
		if err := repo.Seed(context.Background(), static.Movies()); err != nil {
			log.Fatal(err)
		}
		return repo
	case "qdrant":
		client := infra_qdrant_catalog.MustEstablishConn(cfg.Qdrant)
		return infra_qdrant_catalog.New(client, cfg.Qdrant.Collection, cfg.Room.DeckSize)
	default:
		return static
	}
}

func newBus(cfg *config.Config, conns *connections) usecase_room.EventBus {
	switch cfg.Drivers.Bus {
	case "redis":
		return infra_redis_topic.New(conns.redisClient(), "room_topic")
	default:
		return eventbus.New(eventbus.WithBuffer(cfg.Room.SubscriberBuffer))
	}
}

func newSessionCache(cfg *config.Config, conns *connections) identity.SessionCache {
	switch cfg.Drivers.Session {
	case "redis":
		return infra_session_cache.New(conns.redisClient(), "session_cache")
	default:
		return infra_memory.NewSessionCache()
	}
}
