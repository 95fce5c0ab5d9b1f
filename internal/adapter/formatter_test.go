package adapter

import (
	"strings"
	"testing"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
)

func TestFormatChartResult(t *testing.T) {
	f := NewResponseFormatter("ko")

	tests := []struct {
		name     string
		locale   string
		rank     string
		contains []string
	}{
		{
			name:     "top rank in korean",
			locale:   "ko",
			rank:     constants.RankTop,
			contains: []string{"NOVA", "1위", "+20,000,000원", "+100,000명", "+15"},
		},
		{
			name:     "bottom rank in english",
			locale:   "en",
			rank:     constants.RankBottom,
			contains: []string{"NOVA", "나락", "-5,000,000", "-10,000 fans", "-15 reputation"},
		},
		{
			name:     "unknown rank falls back to mid tier",
			locale:   "ko",
			rank:     "전설의 1위",
			contains: []string{constants.RankMid, "+2,000,000원"},
		},
		{
			name:     "unknown locale falls back to korean",
			locale:   "jp",
			rank:     constants.RankHigh,
			contains: []string{"활동 결과", "+8,000,000원"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.FormatChartResult(tt.locale, "NOVA", tt.rank)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("message %q missing %q", got, want)
				}
			}
		})
	}
}

func TestFormatGameOver(t *testing.T) {
	state := &domain.GameState{
		Company: domain.Company{Name: "NOVA Entertainment", FanCount: 135000},
		Turn:    7,
		Locale:  "ko",
		History: []domain.TurnResult{{Title: "a"}, {Title: "b"}, {Title: "c"}},
	}

	got := NewResponseFormatter("ko").FormatGameOver(state)
	for _, want := range []string{"NOVA Entertainment", "7턴", "3장", "135,000명"} {
		if !strings.Contains(got, want) {
			t.Errorf("message %q missing %q", got, want)
		}
	}

	state.Locale = "en"
	got = NewResponseFormatter("ko").FormatGameOver(state)
	for _, want := range []string{"shut down after 7 turns", "Releases: 3", "135,000"} {
		if !strings.Contains(got, want) {
			t.Errorf("message %q missing %q", got, want)
		}
	}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "+0"},
		{999, "+999"},
		{1000, "+1,000"},
		{20000000, "+20,000,000"},
		{-5000000, "-5,000,000"},
	}

	for _, tt := range tests {
		if got := signedAmount(tt.in); got != tt.want {
			t.Errorf("signedAmount(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
