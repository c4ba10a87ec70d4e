package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListGamesBySport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamesBySport")
	defer span.End()

	sport := strings.TrimSpace(r.PathValue("sport"))
	lines, err := h.dashboardService.LatestLines(ctx, sport)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]gameLinesDTO, 0, len(lines))
	for _, entry := range lines {
		items = append(items, gameLinesToDTO(entry))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetGameHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameHistory")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	g, snapshots, err := h.dashboardService.History(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "get game history failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]snapshotDTO, 0, len(snapshots))
	for _, snapshot := range snapshots {
		items = append(items, snapshotToDTO(snapshot))
	}

	writeSuccess(ctx, w, http.StatusOK, gameHistoryDTO{
		Game:      gameToDTO(g),
		Snapshots: items,
	})
}
