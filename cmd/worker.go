package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/audit"
	auditRepo "github.com/Rutuja-Parab/policyzen/internal/audit/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/Rutuja-Parab/policyzen/internal/policy"
	policyRepo "github.com/Rutuja-Parab/policyzen/internal/policy/postgres"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers that run alongside the HTTP server.`,
}

var expiryWorkerCmd = &cobra.Command{
	Use:   "expiry",
	Short: "Mark lapsed policies as EXPIRED",
	Long:  `Periodically mark ACTIVE policies whose end date has passed as EXPIRED.`,
	Run: func(cmd *cobra.Command, args []string) {
		startExpiryWorker()
	},
}

var (
	expiryOnce     bool
	expiryInterval time.Duration
)

func startExpiryWorker() {
	ctx := context.Background()

	config, lg, err := setup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := initDB(ctx, config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gdb, err := openGorm(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	bus := events.NewEventBus(lg)
	audit.NewRecorder(auditRepo.NewAuditRepository(gdb), lg).Register(bus)
	// audit rows land before the sweep returns
	service := policy.NewService(policyRepo.NewPolicyRepository(gdb, uniqueness.NewGuard(lg)), syncPublisher{bus}, lg)

	interval := config.Worker.ExpiryInterval
	if expiryInterval > 0 {
		interval = expiryInterval
	}
	worker := policy.NewExpiryWorker(service, interval, lg)

	if expiryOnce {
		n, err := worker.RunOnce(ctx)
		if err != nil {
			os.Exit(1)
		}
		fmt.Printf("expired %d policies\n", n)
		return
	}

	worker.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("expiry worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	lg.Info("received signal, shutting down expiry worker", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		worker.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		lg.Info("expiry worker shutdown complete")
	case <-shutdownCtx.Done():
		lg.Warn("shutdown timeout reached, forcing exit")
	}
}

type syncPublisher struct {
	bus *events.EventBus
}

func (p syncPublisher) Publish(ctx context.Context, event events.Event) error {
	return p.bus.PublishSync(ctx, event)
}

func init() {
	expiryWorkerCmd.Flags().BoolVar(&expiryOnce, "once", false, "run a single sweep and exit")
	expiryWorkerCmd.Flags().DurationVar(&expiryInterval, "interval", 0, "sweep interval (overrides config)")

	workerCmd.AddCommand(expiryWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
