package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/engine"
	"github.com/parkjy/idol-tycoon-go/internal/prompt"
)

var lastNames = []string{"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임"}

var maleFirstNames = []string{
	"민준", "서준", "도윤", "예준", "시우", "하준",
	"주원", "지호", "지훈", "준우", "건우", "우진",
}

var femaleFirstNames = []string{
	"서연", "서윤", "지우", "서현", "하은", "하윤",
	"민서", "지유", "윤서", "지민", "채원", "수아",
}

const analysisFallback = "기획사 평가 준비 중입니다."

// CastingService rolls trainee candidates and asks the model for a one-line
// agency verdict on each. Every step is best effort; a full batch always
// comes back.
type CastingService struct {
	generator Generator
	rng       engine.RNG
	logger    *zap.Logger
}

func NewCastingService(generator Generator, rng engine.RNG, logger *zap.Logger) *CastingService {
	return &CastingService{
		generator: generator,
		rng:       rng,
		logger:    logger,
	}
}

// GenerateCandidates produces count independent trainees in parallel.
func (cs *CastingService) GenerateCandidates(ctx context.Context, count int) []*domain.Idol {
	if count <= 0 {
		count = constants.Casting.BatchSize
	}

	ctx, cancel := context.WithTimeout(ctx, constants.Collaborator.CastingTimeout)
	defer cancel()

	candidates := make([]*domain.Idol, count)
	p := pool.New().WithMaxGoroutines(count)

	for idx := range candidates {
		idx := idx
		seed := cs.rollCandidate()
		p.Go(func() {
			seed.Analysis = cs.analyze(ctx, seed)
			candidates[idx] = seed
		})
	}

	p.Wait()
	return candidates
}

// rollCandidate produces everything except the analysis line. Rolls happen
// on the caller goroutine so a seeded generator yields a stable batch.
func (cs *CastingService) rollCandidate() *domain.Idol {
	gender := domain.GenderFemale
	if cs.rng.Float64() > 0.5 {
		gender = domain.GenderMale
	}
	age := constants.Candidate.MinAge + cs.rng.Intn(constants.Candidate.MaxAge-constants.Candidate.MinAge+1)

	return &domain.Idol{
		ID:          uuid.NewString(),
		Name:        cs.rollName(gender),
		Age:         age,
		Gender:      gender,
		PortraitURL: cs.portraitURL(gender, age),
		Stats: domain.Stats{
			Dance:     cs.rollStat(),
			Vocal:     cs.rollStat(),
			Visual:    cs.rollStat(),
			Potential: cs.rng.Intn(constants.Candidate.PotentialMax),
			Charisma:  cs.rollStat(),
		},
		Risk: domain.Risk{
			Scandal:  cs.rng.Intn(constants.Candidate.ScandalMax),
			Romance:  cs.rng.Intn(constants.Candidate.RomanceMax),
			Conflict: cs.rng.Intn(constants.Candidate.ConflictMax),
		},
		IsActive: true,
	}
}

func (cs *CastingService) rollStat() int {
	return constants.Candidate.StatFloor + cs.rng.Intn(constants.Candidate.StatSpread)
}

func (cs *CastingService) rollName(gender domain.Gender) string {
	lastName := lastNames[cs.rng.Intn(len(lastNames))]
	firstNames := femaleFirstNames
	if gender == domain.GenderMale {
		firstNames = maleFirstNames
	}
	return lastName + firstNames[cs.rng.Intn(len(firstNames))]
}

func (cs *CastingService) portraitURL(gender domain.Gender, age int) string {
	return fmt.Sprintf("https://api.dicebear.com/9.x/avataaars/svg?seed=%s-%d-%d",
		gender, age, cs.rng.Intn(1_000_000))
}

func (cs *CastingService) analyze(ctx context.Context, idol *domain.Idol) string {
	genderLabel := "여자"
	if idol.Gender == domain.GenderMale {
		genderLabel = "남자"
	}

	p := prompt.BuildCandidatePrompt(prompt.CandidateVars{
		GenderLabel: genderLabel,
		Age:         idol.Age,
		Dance:       idol.Stats.Dance,
		Vocal:       idol.Stats.Vocal,
		Visual:      idol.Stats.Visual,
		Scandal:     idol.Risk.Scandal,
	})

	text, _, err := cs.generator.GenerateText(ctx, p, PresetBalanced, nil)
	if err != nil {
		cs.logger.Warn("Candidate analysis failed, using fallback",
			zap.String("candidate", idol.Name),
			zap.Error(err))
		return analysisFallback
	}
	return text
}
