package vessel

import (
	"log/slog"

	"github.com/Rutuja-Parab/policyzen/internal/core/dualwrite"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/Rutuja-Parab/policyzen/internal/insured"
	"github.com/Rutuja-Parab/policyzen/internal/transport"
	"gorm.io/gorm"
)

type (
	Service = insured.Service[*Vessel]
	Handler = insured.Handler[*Vessel, Payload]
)

func NewService(db *gorm.DB, guard *uniqueness.Guard, publisher events.Publisher, logger *slog.Logger) *Service {
	coordinator := dualwrite.NewCoordinator(db, guard, Kind, logger)
	return insured.NewService[*Vessel](coordinator, publisher, Kind.Label, logger)
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return insured.NewHandler[*Vessel, Payload](baseHandler, service)
}
