package adapter

import (
	"fmt"
	"strings"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
)

// ResponseFormatter renders player-facing announcement text. Game state is
// delivered as structured JSON; these strings are the narration layer on top
// of it, localized per session.
type ResponseFormatter struct {
	fallbackLocale string
}

// NewResponseFormatter creates a new ResponseFormatter.
func NewResponseFormatter(fallbackLocale string) *ResponseFormatter {
	if strings.TrimSpace(fallbackLocale) == "" {
		fallbackLocale = "ko"
	}
	return &ResponseFormatter{fallbackLocale: fallbackLocale}
}

func (f *ResponseFormatter) resolve(locale string) string {
	switch locale {
	case "ko", "en":
		return locale
	default:
		return f.fallbackLocale
	}
}

// FormatChartResult narrates a settled chart outcome, including the economic
// deltas the rank carried.
func (f *ResponseFormatter) FormatChartResult(locale, groupName, rank string) string {
	effect, ok := constants.RankEffects[rank]
	if !ok {
		rank = constants.RankMid
		effect = constants.RankEffects[constants.RankMid]
	}

	var sb strings.Builder
	if f.resolve(locale) == "en" {
		sb.WriteString(fmt.Sprintf("📊 %s finished the promotion cycle: %s\n", groupName, rank))
		sb.WriteString(fmt.Sprintf("💰 %s₩  👥 %s fans  ⭐ %s reputation",
			signedAmount(effect.Money),
			signedAmount(effect.FanCount),
			signedAmount(effect.Reputation)))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("📊 %s 활동 결과: %s\n", groupName, rank))
	sb.WriteString(fmt.Sprintf("💰 %s원  👥 팬 %s명  ⭐ 평판 %s",
		signedAmount(effect.Money),
		signedAmount(effect.FanCount),
		signedAmount(effect.Reputation)))
	return sb.String()
}

// FormatGameOver summarizes a finished run.
func (f *ResponseFormatter) FormatGameOver(state *domain.GameState) string {
	if f.resolve(state.Locale) == "en" {
		return fmt.Sprintf("💀 %s has shut down after %d turns. Releases: %d, final fans: %s",
			state.Company.Name,
			state.Turn,
			len(state.History),
			groupDigits(state.Company.FanCount))
	}
	return fmt.Sprintf("💀 %s 폐업... %d턴 동안 %d장의 앨범을 냈고 최종 팬은 %s명이었습니다.",
		state.Company.Name,
		state.Turn,
		len(state.History),
		groupDigits(state.Company.FanCount))
}

// signedAmount renders a delta with an explicit sign so gains and losses read
// apart at a glance.
func signedAmount(v int64) string {
	if v < 0 {
		return "-" + groupDigits(-v)
	}
	return "+" + groupDigits(v)
}

func groupDigits(v int64) string {
	digits := fmt.Sprintf("%d", v)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	return sb.String()
}
