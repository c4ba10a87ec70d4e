package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/lineshift/lineshift/internal/usecase"
)

type observationDTO struct {
	HomeTeam      string  `json:"home_team" validate:"required"`
	AwayTeam      string  `json:"away_team" validate:"required"`
	StartTime     string  `json:"start_time"`
	GameDate      string  `json:"game_date"`
	Provider      string  `json:"provider" validate:"required"`
	Spread        *string `json:"spread"`
	Total         *string `json:"total"`
	MoneylineHome *string `json:"moneyline_home"`
	MoneylineAway *string `json:"moneyline_away"`
	HomePitcher   *string `json:"home_pitcher"`
	AwayPitcher   *string `json:"away_pitcher"`
}

type ingestBatchRequest struct {
	Sport        string           `json:"sport" validate:"required"`
	Observations []observationDTO `json:"observations" validate:"required,min=1,dive"`
}

func (dto observationDTO) toRaw() usecase.RawObservation {
	return usecase.RawObservation{
		HomeTeam:      dto.HomeTeam,
		AwayTeam:      dto.AwayTeam,
		StartTime:     dto.StartTime,
		GameDate:      dto.GameDate,
		Provider:      dto.Provider,
		Spread:        dto.Spread,
		Total:         dto.Total,
		MoneylineHome: dto.MoneylineHome,
		MoneylineAway: dto.MoneylineAway,
		HomePitcher:   dto.HomePitcher,
		AwayPitcher:   dto.AwayPitcher,
	}
}

func (h *Handler) IngestOdds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestOdds")
	defer span.End()

	req, ok := h.decodeIngestRequest(w, r)
	if !ok {
		return
	}

	observations := make([]usecase.RawObservation, 0, len(req.Observations))
	for _, dto := range req.Observations {
		observations = append(observations, dto.toRaw())
	}

	report, err := h.ingestionService.IngestBatch(ctx, req.Sport, observations)
	if err != nil {
		h.logger.WarnContext(ctx, "odds ingestion failed", "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) SyncSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncSchedule")
	defer span.End()

	req, ok := h.decodeIngestRequest(w, r)
	if !ok {
		return
	}

	observations := make([]usecase.RawObservation, 0, len(req.Observations))
	for _, dto := range req.Observations {
		observations = append(observations, dto.toRaw())
	}

	report, err := h.ingestionService.SyncSchedule(ctx, req.Sport, observations)
	if err != nil {
		h.logger.WarnContext(ctx, "schedule sync failed", "sport", req.Sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) decodeIngestRequest(w http.ResponseWriter, r *http.Request) (ingestBatchRequest, bool) {
	ctx := r.Context()

	var req ingestBatchRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return ingestBatchRequest{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return ingestBatchRequest{}, false
	}
	return req, true
}
