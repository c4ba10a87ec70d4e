package httpapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lineshift/lineshift/internal/platform/logging"
	"github.com/lineshift/lineshift/internal/usecase"
)

type Handler struct {
	ingestionService   *usecase.IngestionService
	movementService    *usecase.MovementService
	dashboardService   *usecase.DashboardService
	playerStatsService *usecase.PlayerStatsService
	refreshService     *usecase.RefreshService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	ingestionService *usecase.IngestionService,
	movementService *usecase.MovementService,
	dashboardService *usecase.DashboardService,
	playerStatsService *usecase.PlayerStatsService,
	refreshService *usecase.RefreshService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		ingestionService:   ingestionService,
		movementService:    movementService,
		dashboardService:   dashboardService,
		playerStatsService: playerStatsService,
		refreshService:     refreshService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}
