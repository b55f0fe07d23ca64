package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/config"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/handler"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/notifier"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/repository"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/auth"
	"github.com/vasapolrittideah/account-api/shared/discovery"
	"github.com/vasapolrittideah/account-api/shared/logger"
	"github.com/vasapolrittideah/account-api/shared/mailer"
	"github.com/vasapolrittideah/account-api/shared/security"
	"github.com/vasapolrittideah/account-api/shared/utilities"
	"github.com/vasapolrittideah/account-api/shared/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logger.New(logger.Options{Service: "account-service"})
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		Service:     cfg.ServiceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userRepo, activityRepo, closeStore := newStore(ctx, cfg, log)
	defer closeStore()

	jwtAuth, err := auth.NewJWTAuthenticator(auth.TokenConfig{
		Secret: cfg.Token.Secret,
		Issuer: cfg.Token.Issuer,
		TTL:    cfg.Token.ExpiresIn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create JWT authenticator")
	}

	var opts []usecase.Option
	if cfg.Mailer.Enabled() {
		m, err := mailer.NewMailer(cfg.Mailer)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create mailer")
		}
		opts = append(opts, usecase.WithWelcomeNotifier(notifier.NewWelcomeMailer(m)))
	}

	accountUsecase := usecase.NewAccountUsecase(
		userRepo,
		activityRepo,
		security.NewPasswordHasher(),
		jwtAuth,
		log,
		opts...,
	)

	validator, err := validation.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create request validator")
	}

	server := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: handler.NewRouter(handler.RouterConfig{
			AccountUsecase: accountUsecase,
			TokenVerifier:  jwtAuth,
			Validator:      validator,
			Logger:         log,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 2)

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var healthServer *utilities.HealthServer
	if cfg.HTTP.GRPCHealthAddr != "" {
		lis, err := net.Listen("tcp", cfg.HTTP.GRPCHealthAddr)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to listen for gRPC health checks")
		}

		healthServer = utilities.NewHealthServer(cfg.ServiceName, log)
		go func() {
			if err := healthServer.Serve(lis); err != nil {
				errCh <- err
			}
		}()
	}

	registrar := registerService(cfg, log)

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("server failed")
	}

	if registrar != nil {
		if err := registrar.Deregister(); err != nil {
			log.Warn().Err(err).Msg("failed to deregister from consul")
		}
	}

	if healthServer != nil {
		healthServer.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down HTTP server")
	}
}

func newStore(
	ctx context.Context,
	cfg *config.AccountServiceConfig,
	log *zerolog.Logger,
) (repository.UserRepository, repository.ActivityRepository, func()) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("using in-memory store, data will not survive a restart")
		store := repository.NewMemoryStore()
		return store, store, func() {}
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Store.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.Store.MongoDatabase)
	closeFn := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}

	return repository.NewUserMongoRepository(ctx, log, db),
		repository.NewActivityMongoRepository(ctx, log, db),
		closeFn
}

func registerService(cfg *config.AccountServiceConfig, log *zerolog.Logger) *discovery.Registrar {
	if cfg.Discovery.ConsulAddr == "" {
		return nil
	}

	_, portStr, err := net.SplitHostPort(cfg.HTTP.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.HTTP.Addr).Msg("invalid HTTP_ADDR")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.HTTP.Addr).Msg("invalid HTTP_ADDR port")
	}

	registrar, err := discovery.NewConsulRegistrar(cfg.Discovery.ConsulAddr, discovery.Registration{
		ServiceName: cfg.ServiceName,
		Host:        cfg.Discovery.AdvertiseHost,
		Port:        port,
		HealthPath:  "/healthz",
		Tags:        []string{"http"},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create consul registrar")
	}

	if err := registrar.Register(); err != nil {
		log.Error().Err(err).Msg("failed to register with consul")
		return nil
	}

	log.Info().Str("service_id", registrar.ServiceID()).Msg("registered with consul")

	return registrar
}
