package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/audit"
	auditRepo "github.com/Rutuja-Parab/policyzen/internal/audit/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/auth"
	authRepo "github.com/Rutuja-Parab/policyzen/internal/auth/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/company"
	companyRepo "github.com/Rutuja-Parab/policyzen/internal/company/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/Rutuja-Parab/policyzen/internal/dashboard"
	"github.com/Rutuja-Parab/policyzen/internal/document"
	documentRepo "github.com/Rutuja-Parab/policyzen/internal/document/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/employee"
	"github.com/Rutuja-Parab/policyzen/internal/endorsement"
	endorsementRepo "github.com/Rutuja-Parab/policyzen/internal/endorsement/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/entity"
	entityRepo "github.com/Rutuja-Parab/policyzen/internal/entity/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/policy"
	policyRepo "github.com/Rutuja-Parab/policyzen/internal/policy/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/search"
	"github.com/Rutuja-Parab/policyzen/internal/student"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"github.com/Rutuja-Parab/policyzen/internal/transport/rest"
	"github.com/Rutuja-Parab/policyzen/internal/vehicle"
	"github.com/Rutuja-Parab/policyzen/internal/vessel"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Gorm     *gorm.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	rest.RegisterAllRoutes(deps.Router, deps.DB, deps.Handlers, rest.Options{
		AllowedOrigins: deps.Config.Server.Origins(),
		OpenAPIPath:    deps.Config.Server.OpenAPIPath,
		MetricsEnabled: deps.Config.Observability.Metrics.Enabled,
		MetricsPath:    deps.Config.Observability.Metrics.Path,
	}, deps.Logger)
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, lg, err := setup()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Server.OpenAPIPath != "" {
		if _, err := rest.LoadOpenAPI(ctx, config.Server.OpenAPIPath); err != nil {
			return nil, err
		}
	}

	db, err := initDB(ctx, config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	gdb, err := openGorm(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	bus := events.NewEventBus(lg)
	audit.NewRecorder(auditRepo.NewAuditRepository(gdb), lg).Register(bus)

	return &Dependencies{
		Config:   config,
		DB:       db,
		Gorm:     gdb,
		Router:   chi.NewRouter(),
		Handlers: buildHandlers(config, db, gdb, bus, lg),
		Logger:   lg,
	}, nil
}

func buildHandlers(config *internal.Config, db *sqlx.DB, gdb *gorm.DB, bus events.Publisher, lg *slog.Logger) rest.Handlers {
	guard := uniqueness.NewGuard(lg)
	base := transport.NewBaseHandler(lg)

	authService := auth.NewService(authRepo.NewRepository(gdb, guard), config.Security.BCryptCost, lg)
	companyService := company.NewService(companyRepo.NewCompanyRepository(gdb), lg)
	entityService := entity.NewService(entityRepo.NewEntityRepository(gdb), lg)
	policyService := policy.NewService(policyRepo.NewPolicyRepository(gdb, guard), bus, lg)
	endorsementService := endorsement.NewService(endorsementRepo.NewEndorsementRepository(gdb, guard), bus, lg)
	documentService := document.NewService(documentRepo.NewDocumentRepository(gdb), lg)

	return rest.Handlers{
		Auth:         auth.NewHandler(base, authService),
		Companies:    company.NewHandler(base, companyService),
		Employees:    employee.NewHandler(base, employee.NewService(gdb, guard, bus, lg)),
		Students:     student.NewHandler(base, student.NewService(gdb, guard, bus, lg)),
		Vessels:      vessel.NewHandler(base, vessel.NewService(gdb, guard, bus, lg)),
		Vehicles:     vehicle.NewHandler(base, vehicle.NewService(gdb, guard, bus, lg)),
		Entities:     entity.NewHandler(base, entityService),
		Policies:     policy.NewHandler(base, policyService),
		Endorsements: endorsement.NewHandler(base, endorsementService),
		Documents:    document.NewHandler(base, documentService),
		Dashboard:    dashboard.NewHandler(base, dashboard.NewAggregator(db, lg)),
		Search:       search.NewHandler(base, search.NewSearcher(db, lg)),
		AuditLogs:    audit.NewHandler(base, audit.NewService(auditRepo.NewAuditRepository(gdb), lg)),
	}
}
