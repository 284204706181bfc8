package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"

	"github.com/dtroode/ipo-auth/internal/api/grpc/authv1"
	"github.com/dtroode/ipo-auth/internal/api/grpc/handler"
	"github.com/dtroode/ipo-auth/internal/api/grpc/middleware"
	"github.com/dtroode/ipo-auth/internal/logger"
	"github.com/dtroode/ipo-auth/internal/model"
	"github.com/dtroode/ipo-auth/internal/service"
)

// Router wires the Auth service and its interceptors into a gRPC server.
type Router struct {
	authService    *service.Auth
	contextManager model.ContextManager
	validator      handler.Validator
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	authService *service.Auth,
	contextManager model.ContextManager,
	validator handler.Validator,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		contextManager: contextManager,
		validator:      validator,
		logger:         logger,
	}
}

// requiresAuth matches the methods that need a bearer token. Signup, Login
// and VerifyToken are public.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	return c.FullMethod() == authv1.Auth_Profile_FullMethodName
}

// Register builds the gRPC server with recovery, request logging and
// authentication interceptors.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	rec := middleware.NewRecovery(r.logger)
	authenticate := middleware.NewAuthenticate(r.authService.Tokens(), r.contextManager, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(rec.HandlePanic)),
			logging.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	s := grpc.NewServer(opts...)
	r.registerAuthRoutes(s)

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.validator, r.logger)
	authv1.RegisterAuthServer(server, authHandler)
}
