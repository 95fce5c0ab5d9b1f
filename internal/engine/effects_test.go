package engine

import (
	"math"
	"testing"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
)

func riskyIdol(scandal, romance, conflict int) *domain.Idol {
	return &domain.Idol{
		ID:   "r",
		Name: "위험돌",
		Risk: domain.Risk{Scandal: scandal, Romance: romance, Conflict: conflict},
	}
}

func TestEventChance(t *testing.T) {
	cases := []struct {
		name  string
		group []*domain.Idol
		want  float64
	}{
		{"empty group keeps the base chance", nil, 0.30},
		{"clean member adds nothing", []*domain.Idol{riskyIdol(10, 10, 10)}, 0.30},
		{"scandal at the threshold adds nothing", []*domain.Idol{riskyIdol(50, 0, 0)}, 0.30},
		{"scandal above the threshold", []*domain.Idol{riskyIdol(51, 0, 0)}, 0.45},
		{"romance above the threshold", []*domain.Idol{riskyIdol(0, 61, 0)}, 0.40},
		{"conflict above the threshold", []*domain.Idol{riskyIdol(0, 0, 41)}, 0.40},
		{"one member can stack all three", []*domain.Idol{riskyIdol(90, 90, 90)}, 0.65},
		{"two risky members add independently", []*domain.Idol{riskyIdol(51, 0, 0), riskyIdol(0, 61, 0)}, 0.55},
		{"the sum never passes the ceiling", []*domain.Idol{
			riskyIdol(90, 90, 90),
			riskyIdol(90, 90, 90),
			riskyIdol(90, 90, 90),
		}, 0.80},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EventChance(tc.group)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("EventChance = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestEventChanceIsMonotonicInGroupSize(t *testing.T) {
	group := []*domain.Idol{}
	prev := EventChance(group)
	for i := 0; i < 6; i++ {
		group = append(group, riskyIdol(80, 0, 0))
		next := EventChance(group)
		if next < prev {
			t.Fatalf("chance decreased from %v to %v after adding a risky member", prev, next)
		}
		if next > constants.Event.MaxChance+1e-9 {
			t.Fatalf("chance %v exceeds the ceiling", next)
		}
		prev = next
	}
}

func TestRankEffectFallsBackToMidTier(t *testing.T) {
	known := RankEffect(constants.RankMid)
	unknown := RankEffect("차트 밖")

	if unknown != known {
		t.Fatalf("expected mid-tier effect for an unknown rank, got %+v", unknown)
	}
	if top := RankEffect(constants.RankTop); top.Money != 20_000_000 || top.FanCount != 100_000 || top.Reputation != 15 {
		t.Fatalf("unexpected top-rank effect: %+v", top)
	}
}
