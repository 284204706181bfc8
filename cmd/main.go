package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	apicontext "github.com/dtroode/ipo-auth/internal/api/context"
	grpcRouter "github.com/dtroode/ipo-auth/internal/api/grpc/router"
	grpcServer "github.com/dtroode/ipo-auth/internal/api/grpc/server"
	httpHandler "github.com/dtroode/ipo-auth/internal/api/http/handler"
	httpRouter "github.com/dtroode/ipo-auth/internal/api/http/router"
	httpServer "github.com/dtroode/ipo-auth/internal/api/http/server"
	"github.com/dtroode/ipo-auth/internal/api/validation"
	"github.com/dtroode/ipo-auth/internal/config"
	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/metrics"
	"github.com/dtroode/ipo-auth/internal/model"
	"github.com/dtroode/ipo-auth/internal/password"
	"github.com/dtroode/ipo-auth/internal/repository/memory"
	"github.com/dtroode/ipo-auth/internal/repository/postgres"
	"github.com/dtroode/ipo-auth/internal/server"
	"github.com/dtroode/ipo-auth/internal/service"
	"github.com/dtroode/ipo-auth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	userStore, pinger, closeStore := openUserStore(ctx, cfg.Database, logger)
	defer closeStore()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hasher := password.NewBcrypt(cfg.Password.BcryptCost)
	tokenManager := token.NewJWT(cfg.JWT.Secret.Bytes(), cfg.JWT.TTL)

	authService := service.NewAuth(userStore, hasher, tokenManager, logger,
		service.WithStoreTimeout(cfg.Database.Timeout),
		service.WithMetrics(metrics.New(registry)),
	)
	ctxMgr := apicontext.NewManager()
	validator := validation.New()

	logger.Info("auth service configured",
		"store", cfg.Database.Driver,
		"token_ttl", tokenManager.TTL().String(),
		"bcrypt_cost", hasher.Cost(),
		"jwt_secret", cfg.JWT.Secret)

	type frontend struct {
		server        model.Server
		securityLayer model.SecurityLayer
	}

	var frontends []frontend
	if cfg.GRPC.Enabled {
		frontends = append(frontends, frontend{
			server:        registerGRPCServer(logger, authService, ctxMgr, validator, fmt.Sprintf(":%s", cfg.GRPC.Port)),
			securityLayer: server.NewSecurityLayer(cfg.TLS, server.ProtocolHTTP2),
		})
	}
	if cfg.HTTP.Enabled {
		frontends = append(frontends, frontend{
			server:        registerHTTPServer(logger, authService, ctxMgr, validator, registry, pinger, fmt.Sprintf(":%s", cfg.HTTP.Port)),
			securityLayer: server.NewSecurityLayer(cfg.TLS, server.ProtocolHTTP11),
		})
	}

	var wg sync.WaitGroup
	for _, f := range frontends {
		wg.Add(1)
		go func(f frontend) {
			defer wg.Done()
			logger.Info("Starting server on", "server", f.server.Name(), "address", f.server.Address(), "tls", cfg.TLS.Enabled)
			if err := f.server.Start(f.securityLayer); err != nil {
				logger.Error("failed to start server", "server", f.server.Name(), "error", err)
				stop()
			}
		}(f)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, f := range frontends {
		if err := f.server.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "server", f.server.Name(), "error", err, "address", f.server.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

// openUserStore returns the configured store, a pinger for health checks
// (nil for the memory store) and a close func.
func openUserStore(ctx context.Context, cfg config.Database, logger *logger.Logger) (model.UserStore, httpHandler.Pinger, func()) {
	if cfg.Driver == config.DriverMemory {
		logger.Warn("using in-memory user store; accounts are lost on restart")
		return memory.NewUserRepository(), nil, func() {}
	}

	db, err := postgres.NewConnection(ctx, cfg.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}

	return postgres.NewUserRepository(db), db, func() { _ = db.Close() }
}

func registerGRPCServer(
	logger *logger.Logger,
	authService *service.Auth,
	ctxMgr model.ContextManager,
	validator *validation.Validator,
	addr string,
) *grpcServer.GRPCServer {
	r := grpcRouter.New(authService, ctxMgr, validator, logger)
	return grpcServer.NewGRPCServer(r.Register(), addr)
}

func registerHTTPServer(
	logger *logger.Logger,
	authService *service.Auth,
	ctxMgr model.ContextManager,
	validator *validation.Validator,
	gatherer prometheus.Gatherer,
	pinger httpHandler.Pinger,
	addr string,
) *httpServer.HTTPServer {
	r := httpRouter.New(authService, ctxMgr, validator, gatherer, pinger, logger)
	return httpServer.NewHTTPServer(r.Register(), addr)
}
