package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/util"
	"github.com/parkjy/idol-tycoon-go/pkg/errors"
)

// DefaultCompanyName is used when the player starts with a blank name.
const DefaultCompanyName = "NOVA Entertainment"

// Resolver advances the game through its phases. Every method is a pure
// function of the given state snapshot plus the action payload: it returns
// a patch for the session container to merge, or an error and no patch.
// A rejected action never moves funds.
type Resolver struct {
	rng    RNG
	logger *zap.Logger
}

func NewResolver(rng RNG, logger *zap.Logger) *Resolver {
	return &Resolver{rng: rng, logger: logger}
}

// RNG exposes the gameplay random source so collaborator services roll
// candidate stats and fallback scores from the same injectable stream.
func (r *Resolver) RNG() RNG {
	return r.rng
}

func requirePhase(state *domain.GameState, want domain.GamePhase, action string) error {
	if state.Phase != want {
		return errors.NewPhaseError("action not allowed in current phase", string(state.Phase), action)
	}
	return nil
}

// StartGame moves intro → casting, naming the company. Blank or
// whitespace-only input falls back to the default name.
func (r *Resolver) StartGame(state *domain.GameState, companyName string) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseIntro, "start_game"); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(companyName)
	if name == "" {
		name = DefaultCompanyName
	}
	name = util.TruncateString(name, constants.AIInputLimits.MaxCompanyNameLength)

	company := state.Company
	company.Name = name

	phase := domain.PhaseCasting
	r.logger.Info("Game started", zap.String("company", name))

	return &domain.Patch{Company: &company, Phase: &phase}, nil
}

// ConfirmCasting signs the selected candidates: deducts the casting fee,
// appends them to the roster, and replaces the current group. Rejected when
// the selection count is outside [min,max] or funds are insufficient.
func (r *Resolver) ConfirmCasting(state *domain.GameState, selected []*domain.Idol) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseCasting, "confirm_casting"); err != nil {
		return nil, err
	}

	count := len(selected)
	if count < constants.Casting.MinSelection || count > constants.Casting.MaxSelection {
		return nil, errors.NewValidationError("selection count out of range", "selected", count)
	}

	cost := int64(count) * constants.Casting.CostPerMember
	if state.Company.Money < cost {
		return nil, errors.NewFundsError("not enough money to sign the selection", cost, state.Company.Money)
	}

	company := state.Company
	company.Money -= cost

	// Roster is additive: prior entries are never removed.
	roster := make([]*domain.Idol, 0, len(state.Roster)+count)
	roster = append(roster, state.Roster...)
	roster = append(roster, selected...)

	group := make([]*domain.Idol, count)
	copy(group, selected)

	phase := domain.PhaseStudio
	r.logger.Info("Casting confirmed",
		zap.Int("members", count),
		zap.Int64("cost", cost),
		zap.Int64("balance", company.Money),
	)

	return &domain.Patch{
		Company:      &company,
		Roster:       roster,
		CurrentGroup: group,
		Phase:        &phase,
	}, nil
}

// ChargeProduction deducts the studio fee at commit time, before the
// external generation call resolves. The fee is pre-paid and non-refundable:
// a failed generation ships placeholder content, never a refund.
func (r *Resolver) ChargeProduction(state *domain.GameState, concept domain.ConceptType, market domain.MarketType, retry bool) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseStudio, "produce"); err != nil {
		return nil, err
	}
	if !concept.Valid() {
		return nil, errors.NewValidationError("unknown concept", "concept", string(concept))
	}
	if !market.Valid() {
		return nil, errors.NewValidationError("unknown target market", "targetMarket", string(market))
	}
	if retry && state.CurrentTrack == nil {
		return nil, errors.NewValidationError("nothing to retry", "retry", retry)
	}

	cost := ProductionCost(market, retry)
	if state.Company.Money < cost {
		return nil, errors.NewFundsError("not enough money to produce", cost, state.Company.Money)
	}

	company := state.Company
	company.Money -= cost

	r.logger.Info("Production charged",
		zap.String("concept", string(concept)),
		zap.String("market", string(market)),
		zap.Bool("retry", retry),
		zap.Int64("cost", cost),
	)

	return &domain.Patch{Company: &company}, nil
}

// SetTrack stores the produced track. The phase stays in studio: production
// completion only populates the candidate track and re-displays the studio
// in its result sub-state, leaving room for one retry before release.
func (r *Resolver) SetTrack(state *domain.GameState, track *domain.Track) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseStudio, "set_track"); err != nil {
		return nil, err
	}
	if track == nil {
		return nil, errors.NewValidationError("track must not be nil", "track", nil)
	}
	return &domain.Patch{CurrentTrack: track}, nil
}

// Release moves studio → musicshow once the player commits to the produced
// track.
func (r *Resolver) Release(state *domain.GameState) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseStudio, "release"); err != nil {
		return nil, err
	}
	if state.CurrentTrack == nil {
		return nil, errors.NewValidationError("no track to release", "currentTrack", nil)
	}
	return domain.PatchPhase(domain.PhaseMusicShow), nil
}

// AttachJudgeResult moves musicshow → result, carrying the verdict in
// pendingEvent and appending the comeback record to history with the rank's
// configured deltas and the current turn number.
func (r *Resolver) AttachJudgeResult(state *domain.GameState, result *domain.JudgeResult) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseMusicShow, "judge"); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.NewValidationError("judge result must not be nil", "result", nil)
	}

	title := "Unknown"
	if state.CurrentTrack != nil {
		title = state.CurrentTrack.Title
	}

	effect := RankEffect(result.Result)
	history := make([]domain.TurnResult, 0, len(state.History)+1)
	history = append(history, state.History...)
	history = append(history, domain.TurnResult{
		Title:       title,
		Result:      result.Result,
		MoneyChange: effect.Money,
		FanChange:   effect.FanCount,
		Turn:        state.Turn,
	})

	phase := domain.PhaseResult
	return &domain.Patch{
		History: history,
		Phase:   &phase,
		PendingEvent: &domain.PendingEvent{
			Type:        domain.PendingJudgeResult,
			JudgeResult: result,
		},
	}, nil
}

// ApplyChartResult moves result → casting, event, or gameover. It applies
// the rank's economic deltas with the zero floors, checks the terminal
// condition, and otherwise increments the turn and rolls for a crisis.
func (r *Resolver) ApplyChartResult(state *domain.GameState) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseResult, "proceed"); err != nil {
		return nil, err
	}

	rank := ""
	if state.PendingEvent != nil && state.PendingEvent.JudgeResult != nil {
		rank = state.PendingEvent.JudgeResult.Result
	}
	effect := RankEffect(rank)

	company := state.Company
	company.Money += effect.Money
	company.Reputation = util.FloorZero(company.Reputation + effect.Reputation)
	company.FanCount = util.FloorZero(company.FanCount + effect.FanCount)

	turn := state.Turn + 1

	if company.Money <= 0 || company.Reputation <= 0 {
		r.logger.Info("Game over",
			zap.Int64("money", company.Money),
			zap.Int64("reputation", company.Reputation),
			zap.Int("turn", state.Turn),
		)
		phase := domain.PhaseGameOver
		return &domain.Patch{
			Company:      &company,
			Turn:         &turn,
			Phase:        &phase,
			ClearPending: true,
		}, nil
	}

	chance := EventChance(state.CurrentGroup)
	phase := domain.PhaseCasting
	if r.rng.Float64() < chance {
		phase = domain.PhaseEvent
	}

	r.logger.Info("Chart result applied",
		zap.String("rank", rank),
		zap.Float64("event_chance", chance),
		zap.String("next_phase", string(phase)),
	)

	return &domain.Patch{
		Company:      &company,
		Turn:         &turn,
		Phase:        &phase,
		ClearPending: true,
	}, nil
}

// ApplyEventChoice resolves a crisis event with the picked choice. Same
// floors and terminal rule as chart results; the turn does not advance on
// survival.
func (r *Resolver) ApplyEventChoice(state *domain.GameState, choice domain.EventChoice) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseEvent, "choose"); err != nil {
		return nil, err
	}

	company := state.Company
	company.Money += choice.Effect.Money
	company.Reputation = util.FloorZero(company.Reputation + choice.Effect.Reputation)
	company.FanCount = util.FloorZero(company.FanCount + choice.Effect.FanCount)

	phase := domain.PhaseCasting
	if company.Money <= 0 || company.Reputation <= 0 {
		phase = domain.PhaseGameOver
		r.logger.Info("Game over after crisis",
			zap.Int64("money", company.Money),
			zap.Int64("reputation", company.Reputation),
		)
	}

	return &domain.Patch{Company: &company, Phase: &phase}, nil
}

// Restart resets the aggregate to its initial values. Only valid from the
// terminal phase.
func (r *Resolver) Restart(state *domain.GameState) (*domain.Patch, error) {
	if err := requirePhase(state, domain.PhaseGameOver, "restart"); err != nil {
		return nil, err
	}

	phase := domain.PhaseIntro
	turn := 1
	return &domain.Patch{
		Company: &domain.Company{
			Money:      constants.Company.InitialMoney,
			Reputation: constants.Company.InitialReputation,
			FanCount:   constants.Company.InitialFanCount,
		},
		Roster:       []*domain.Idol{},
		CurrentGroup: []*domain.Idol{},
		ClearTrack:   true,
		Phase:        &phase,
		Turn:         &turn,
		History:      []domain.TurnResult{},
		ClearPending: true,
	}, nil
}
