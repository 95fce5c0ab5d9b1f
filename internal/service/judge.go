package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/engine"
	"github.com/parkjy/idol-tycoon-go/internal/prompt"
	"github.com/parkjy/idol-tycoon-go/internal/util"
)

const judgeFallbackComment = "AI 서버 이슈로 인한 기본 평가 결과입니다. 전반적으로 무난한 성적입니다."

// JudgeService scores a comeback stage. The verdict is best effort; when the
// model can't deliver one, a bounded random verdict keeps the show running.
type JudgeService struct {
	generator Generator
	rng       engine.RNG
	logger    *zap.Logger
}

func NewJudgeService(generator Generator, rng engine.RNG, logger *zap.Logger) *JudgeService {
	return &JudgeService{
		generator: generator,
		rng:       rng,
		logger:    logger,
	}
}

// Evaluate asks the model for a verdict on the released track.
func (js *JudgeService) Evaluate(ctx context.Context, track *domain.Track, members []*domain.Idol, company domain.Company, turn int) *domain.JudgeResult {
	ctx, cancel := context.WithTimeout(ctx, constants.Collaborator.JudgeTimeout)
	defer cancel()

	p := prompt.BuildJudgePrompt(prompt.JudgeVars{
		AvgVocal:     averageStat(members, func(s domain.Stats) int { return s.Vocal }),
		AvgDance:     averageStat(members, func(s domain.Stats) int { return s.Dance }),
		AvgVisual:    averageStat(members, func(s domain.Stats) int { return s.Visual }),
		AvgCharisma:  averageStat(members, func(s domain.Stats) int { return s.Charisma }),
		MemberCount:  len(members),
		Concept:      string(track.Concept),
		TargetMarket: string(track.TargetMarket),
		Reputation:   company.Reputation,
		FanCount:     company.FanCount,
		Turn:         turn,
	})

	var result domain.JudgeResult
	if _, err := js.generator.GenerateJSON(ctx, p, PresetPrecise, &result, nil); err != nil {
		js.logger.Warn("Judge generation failed, using fallback verdict",
			zap.String("track", track.Title),
			zap.Error(err))
		return js.fallbackVerdict()
	}

	js.sanitize(&result)
	return &result
}

// sanitize clamps every score into range and repairs an off-menu rank label
// from the total score.
func (js *JudgeService) sanitize(result *domain.JudgeResult) {
	result.Scores.Composition = util.ClampScore(result.Scores.Composition)
	result.Scores.Vocal = util.ClampScore(result.Scores.Vocal)
	result.Scores.Performance = util.ClampScore(result.Scores.Performance)
	result.Scores.Popularity = util.ClampScore(result.Scores.Popularity)
	result.Scores.Buzz = util.ClampScore(result.Scores.Buzz)
	result.TotalScore = util.ClampScore(result.TotalScore)
	result.ChartProbability = util.ClampScore(result.ChartProbability)

	if _, known := constants.RankEffects[result.Result]; !known {
		js.logger.Warn("Judge returned an unknown rank, rebucketing",
			zap.String("rank", result.Result),
			zap.Int("total_score", result.TotalScore))
		result.Result = RankForScore(result.TotalScore)
	}
}

func (js *JudgeService) fallbackVerdict() *domain.JudgeResult {
	total := constants.Judge.FallbackBase + js.rng.Intn(constants.Judge.FallbackSpread)

	return &domain.JudgeResult{
		Scores: domain.JudgeScores{
			Composition: total,
			Vocal:       total,
			Performance: total,
			Popularity:  total,
			Buzz:        total,
		},
		TotalScore:       total,
		ChartProbability: util.ClampScore(total - 5),
		Comment:          judgeFallbackComment,
		Result:           RankForScore(total),
	}
}

// RankForScore maps a total score onto the rank ladder the judge prompt
// advertises.
func RankForScore(score int) string {
	switch {
	case score >= constants.Judge.TopThreshold:
		return constants.RankTop
	case score >= constants.Judge.HighThreshold:
		return constants.RankHigh
	case score >= constants.Judge.MidThreshold:
		return constants.RankMid
	case score >= constants.Judge.LowThreshold:
		return constants.RankLow
	default:
		return constants.RankBottom
	}
}

func averageStat(members []*domain.Idol, pick func(domain.Stats) int) int {
	if len(members) == 0 {
		return 0
	}
	sum := 0
	for _, m := range members {
		sum += pick(m.Stats)
	}
	return int(math.Round(float64(sum) / float64(len(members))))
}
