package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/lineshift/lineshift/internal/domain/game"
	"github.com/lineshift/lineshift/internal/domain/playerstats"
	"github.com/lineshift/lineshift/internal/usecase"
)

type playerStatRequestDTO struct {
	PlayerName       string  `json:"player_name" validate:"required"`
	Team             string  `json:"team" validate:"required"`
	GamesPlayed      int     `json:"games_played"`
	PlateAppearances int     `json:"plate_appearances"`
	HomeRuns         int     `json:"home_runs"`
	Runs             int     `json:"runs"`
	RBI              int     `json:"rbi"`
	StolenBases      int     `json:"stolen_bases"`
	WalkRate         float64 `json:"walk_rate"`
	StrikeoutRate    float64 `json:"strikeout_rate"`
	ISO              float64 `json:"iso"`
	BABIP            float64 `json:"babip"`
	BattingAvg       float64 `json:"batting_avg"`
	OBP              float64 `json:"obp"`
	SLG              float64 `json:"slg"`
	WOBA             float64 `json:"woba"`
	XWOBA            float64 `json:"xwoba"`
	WRCPlus          int     `json:"wrc_plus"`
	WAR              float64 `json:"war"`
}

type replacePlayerStatsRequest struct {
	Stats []playerStatRequestDTO `json:"stats" validate:"required,min=1,dive"`
}

func (h *Handler) ReplacePlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplacePlayerStats")
	defer span.End()

	sport := strings.TrimSpace(r.PathValue("sport"))
	if !game.IsKnownSport(sport) {
		writeError(ctx, w, fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, sport))
		return
	}

	var req replacePlayerStatsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: decode request body: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	now := time.Now().UTC()
	stats := make([]playerstats.SeasonStat, 0, len(req.Stats))
	for _, dto := range req.Stats {
		stats = append(stats, playerstats.SeasonStat{
			PlayerName:       dto.PlayerName,
			Team:             dto.Team,
			GamesPlayed:      dto.GamesPlayed,
			PlateAppearances: dto.PlateAppearances,
			HomeRuns:         dto.HomeRuns,
			Runs:             dto.Runs,
			RBI:              dto.RBI,
			StolenBases:      dto.StolenBases,
			WalkRate:         dto.WalkRate,
			StrikeoutRate:    dto.StrikeoutRate,
			ISO:              dto.ISO,
			BABIP:            dto.BABIP,
			BattingAvg:       dto.BattingAvg,
			OBP:              dto.OBP,
			SLG:              dto.SLG,
			WOBA:             dto.WOBA,
			XWOBA:            dto.XWOBA,
			WRCPlus:          dto.WRCPlus,
			WAR:              dto.WAR,
			LastUpdated:      now,
		})
	}

	if err := h.playerStatsService.Replace(ctx, stats); err != nil {
		h.logger.WarnContext(ctx, "replace player stats failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"replaced": len(stats)})
}

func (h *Handler) ListPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerStats")
	defer span.End()

	sport := strings.TrimSpace(r.PathValue("sport"))
	if !game.IsKnownSport(sport) {
		writeError(ctx, w, fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, sport))
		return
	}

	stats, err := h.playerStatsService.List(ctx, strings.TrimSpace(r.URL.Query().Get("team")))
	if err != nil {
		h.logger.WarnContext(ctx, "list player stats failed", "sport", sport, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatDTO, 0, len(stats))
	for _, stat := range stats {
		items = append(items, playerStatToDTO(stat))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
