package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/engine"
	"github.com/parkjy/idol-tycoon-go/internal/util"
)

// MockGenerator is the offline stand-in for the model backends, enabled with
// FORCE_MOCK. It answers instantly with canned content so the whole game
// loop runs without API keys.
type MockGenerator struct {
	rng    engine.RNG
	logger *zap.Logger
}

func NewMockGenerator(rng engine.RNG, logger *zap.Logger) *MockGenerator {
	logger.Info("Mock generator active, AI backends will not be called")
	return &MockGenerator{rng: rng, logger: logger}
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	return "[Mock] " + util.TruncateString(prompt, 20), &GenerateMetadata{Provider: "Mock"}, nil
}

func (m *MockGenerator) GenerateJSON(ctx context.Context, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	switch v := dest.(type) {
	case *domain.JudgeResult:
		*v = m.mockVerdict()
	case *domain.CrisisEvent:
		*v = m.mockCrisis()
	default:
		m.logger.Warn("Mock generator has no canned document for this type")
	}
	return &GenerateMetadata{Provider: "Mock"}, nil
}

func (m *MockGenerator) mockVerdict() domain.JudgeResult {
	ranks := []string{
		constants.RankTop,
		constants.RankHigh,
		constants.RankMid,
		constants.RankLow,
		constants.RankBottom,
	}
	rank := ranks[m.rng.Intn(len(ranks))]

	base := 30
	switch rank {
	case constants.RankTop:
		base = 90
	case constants.RankHigh:
		base = 75
	case constants.RankMid:
		base = 60
	case constants.RankLow:
		base = 45
	}

	return domain.JudgeResult{
		Scores: domain.JudgeScores{
			Composition: util.ClampScore(base + m.rng.Intn(10)),
			Vocal:       util.ClampScore(base + m.rng.Intn(10)),
			Performance: util.ClampScore(base + m.rng.Intn(10)),
			Popularity:  util.ClampScore(base + m.rng.Intn(10)),
			Buzz:        util.ClampScore(base + m.rng.Intn(10)),
		},
		TotalScore:       util.ClampScore(base + 5),
		ChartProbability: util.ClampScore(base),
		Comment:          "Mock 데이터: 전반적으로 훌륭한 퍼포먼스였습니다.",
		Result:           rank,
	}
}

func (m *MockGenerator) mockCrisis() domain.CrisisEvent {
	return domain.CrisisEvent{
		Title:       "Mock 이벤트",
		Description: "이것은 MOCK 이벤트입니다.",
		MemberName:  "알 수 없음",
		Choices: []domain.EventChoice{
			{
				Text:          "선택지 1",
				Effect:        domain.EventEffect{Reputation: -5, Money: 0, FanCount: -2000},
				ResultMessage: "결과 1",
			},
			{
				Text:          "선택지 2",
				Effect:        domain.EventEffect{Reputation: -20, Money: 0, FanCount: -10000},
				ResultMessage: "결과 2",
			},
			{
				Text:          "선택지 3",
				Effect:        domain.EventEffect{Reputation: 2, Money: -500000, FanCount: 1000},
				ResultMessage: "결과 3",
			},
		},
	}
}
