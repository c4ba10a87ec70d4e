package usecase

import (
	"errors"
	"testing"

	"github.com/lineshift/lineshift/internal/domain/playerstats"
	"github.com/lineshift/lineshift/internal/infrastructure/repository/memory"
)

func TestPlayerStatsReplaceAndList(t *testing.T) {
	svc := NewPlayerStatsService(memory.NewPlayerStatsRepository())
	ctx := t.Context()

	stats := []playerstats.SeasonStat{
		{PlayerName: "  Aaron Judge ", Team: "Yankees", HomeRuns: 48, BattingAvg: 0.301},
		{PlayerName: "Rafael Devers", Team: "Red Sox", HomeRuns: 30, BattingAvg: 0.278},
	}
	if err := svc.Replace(ctx, stats); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("stats = %d, want 2", len(all))
	}

	yankees, err := svc.List(ctx, "Yankees")
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(yankees) != 1 || yankees[0].PlayerName != "Aaron Judge" {
		t.Fatalf("filtered = %+v, want trimmed Judge entry", yankees)
	}

	// Query-string filters match regardless of casing.
	lower, err := svc.List(ctx, "yankees")
	if err != nil {
		t.Fatalf("List lowercase filter: %v", err)
	}
	if len(lower) != 1 || lower[0].PlayerName != "Aaron Judge" {
		t.Fatalf("filtered = %+v, want case-insensitive match", lower)
	}
}

func TestPlayerStatsReplaceIsFullSwap(t *testing.T) {
	svc := NewPlayerStatsService(memory.NewPlayerStatsRepository())
	ctx := t.Context()

	first := []playerstats.SeasonStat{{PlayerName: "Juan Soto", Team: "Yankees"}}
	if err := svc.Replace(ctx, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	// Traded mid-season; the feed now lists him under the new team only.
	second := []playerstats.SeasonStat{{PlayerName: "Juan Soto", Team: "Mets"}}
	if err := svc.Replace(ctx, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 1 || all[0].Team != "Mets" {
		t.Fatalf("stats = %+v, want the old team row gone", all)
	}
}

func TestPlayerStatsReplaceValidation(t *testing.T) {
	svc := NewPlayerStatsService(memory.NewPlayerStatsRepository())

	err := svc.Replace(t.Context(), []playerstats.SeasonStat{{PlayerName: "", Team: "Yankees"}})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}
