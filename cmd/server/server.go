package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/thereayou/trail-service/internal/cache"
	"github.com/thereayou/trail-service/internal/config"
	"github.com/thereayou/trail-service/internal/database"
	"github.com/thereayou/trail-service/internal/database/memstore"
	"github.com/thereayou/trail-service/internal/handlers"
	"github.com/thereayou/trail-service/internal/middleware"
	"github.com/thereayou/trail-service/internal/services"
	"github.com/thereayou/trail-service/pkg/auth"
)

// store - полный контракт хранилища: Postgres или память
type store interface {
	services.UserStore
	services.TrailStore
	handlers.Pinger
	Close() error
}

type Server struct {
	Router     *gin.Engine
	DB         store
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	cfg        *config.Config
	log        *logrus.Logger
}

func NewServer(cfg *config.Config, log *logrus.Logger) (*Server, error) {
	var db store
	if cfg.InMemory() {
		log.Warn("using in-memory storage, data will not survive a restart")
		db = memstore.New()
	} else {
		dbConn := &database.Database{}
		if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		db = dbConn
	}

	var (
		rdb       *redis.Client
		listCache services.TrailListCache
		cachePing handlers.Pinger
	)
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		rdb = redis.NewClient(redisOpts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.WithError(err).Warn("redis is unreachable, trail lists will not be cached until it recovers")
		}
		trailCache := cache.NewTrailCache(rdb, cfg.TrailCacheTTL)
		listCache = trailCache
		cachePing = trailCache
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	passwords := auth.NewPasswordManager(cfg.BcryptCost)

	authSvc := services.NewAuthService(db, passwords, jwtMgr, log)
	trailSvc := services.NewTrailService(db, db, listCache, log)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(log))
	APIEndpoints(
		router,
		jwtMgr,
		handlers.NewAuthHandler(authSvc, log),
		handlers.NewTrailHandler(trailSvc, log),
		handlers.NewHealthHandler(db, cachePing),
	)

	return &Server{
		Router:     router,
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
		cfg:        cfg,
		log:        log,
	}, nil
}

// Run блокируется до отмены ctx, затем корректно останавливает сервер
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Server starting on port %s", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.log.WithError(err).Warn("closing redis")
		}
	}
	if err := s.DB.Close(); err != nil {
		s.log.WithError(err).Warn("closing database")
	}
}
