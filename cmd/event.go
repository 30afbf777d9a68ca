package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Rutuja-Parab/policyzen/internal/audit"
	auditRepo "github.com/Rutuja-Parab/policyzen/internal/audit/postgres"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event management commands",
	Long:  `Publish synthetic events through the audit recorder to check the audit pipeline.`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test event",
	Long:  `Publish a synthetic record event. It is written to audit_logs when the type is audited.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var (
	eventKind     string
	eventRecordID string
	eventActor    string
	eventData     string
)

func publishTestEvent(eventType string) {
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

	ev := events.NewRecordEvent(eventType, eventKind, eventRecordID, eventActor, map[string]interface{}{
		"message": eventData,
		"source":  "cli-command",
	})

	lg.Info("publishing test event", "event_type", eventType, "event_id", ev.EventID())

	if err := bus.PublishSync(ctx, ev); err != nil {
		lg.Error("failed to publish event", "error", err)
		os.Exit(1)
	}

	lg.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().StringVar(&eventKind, "kind", "policy", "record kind stored as entity_type")
	publishEventCmd.Flags().StringVar(&eventRecordID, "record-id", "", "record id (uuid) stored as entity_id")
	publishEventCmd.Flags().StringVar(&eventActor, "actor", "cli", "performed_by value")
	publishEventCmd.Flags().StringVar(&eventData, "data", "test message", "Event data message")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
