package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetGameMovement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameMovement")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	report, err := h.movementService.Detect(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "movement detection failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) ListSportMovements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSportMovements")
	defer span.End()

	sport := strings.TrimSpace(r.PathValue("sport"))
	reports, err := h.movementService.DetectAll(ctx, sport)
	if err != nil {
		h.logger.WarnContext(ctx, "sport movement scan failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reports)
}
