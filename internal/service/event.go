package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/engine"
	"github.com/parkjy/idol-tycoon-go/internal/prompt"
)

// EventService writes the crisis scenario that interrupts a comeback cycle.
// The scenario is best effort; a canned incident ships when the model fails.
type EventService struct {
	generator Generator
	rng       engine.RNG
	logger    *zap.Logger
}

func NewEventService(generator Generator, rng engine.RNG, logger *zap.Logger) *EventService {
	return &EventService{
		generator: generator,
		rng:       rng,
		logger:    logger,
	}
}

// GenerateCrisis picks one member of the active group and builds an incident
// around them. The returned event always carries exactly three choices.
func (es *EventService) GenerateCrisis(ctx context.Context, group []*domain.Idol, company domain.Company) *domain.CrisisEvent {
	ctx, cancel := context.WithTimeout(ctx, constants.Collaborator.EventTimeout)
	defer cancel()

	target := es.pickTarget(group)
	if target == nil {
		es.logger.Warn("Crisis requested with no active group, using canned incident")
		return es.fallbackCrisis("소속 아티스트")
	}

	p := prompt.BuildEventPrompt(prompt.EventVars{
		MemberName: target.Name,
		Scandal:    target.Risk.Scandal,
		Romance:    target.Risk.Romance,
		Reputation: company.Reputation,
		FanCount:   company.FanCount,
		Money:      company.Money,
	})

	var event domain.CrisisEvent
	if _, err := es.generator.GenerateJSON(ctx, p, PresetCreative, &event, nil); err != nil {
		es.logger.Warn("Crisis generation failed, using canned incident",
			zap.String("member", target.Name),
			zap.Error(err))
		return es.fallbackCrisis(target.Name)
	}

	if len(event.Choices) != constants.Event.ChoiceCount || event.Title == "" {
		es.logger.Warn("Crisis came back malformed, using canned incident",
			zap.String("member", target.Name),
			zap.Int("choices", len(event.Choices)))
		return es.fallbackCrisis(target.Name)
	}

	// The scenario must stay about the member the roll picked.
	event.MemberName = target.Name
	return &event
}

func (es *EventService) pickTarget(group []*domain.Idol) *domain.Idol {
	if len(group) == 0 {
		return nil
	}
	return group[es.rng.Intn(len(group))]
}

// fallbackCrisis ships one of the canned incidents. The pick uses the
// gameplay rng so repeated outages do not replay the same scenario.
func (es *EventService) fallbackCrisis(memberName string) *domain.CrisisEvent {
	canned := cannedCrises(memberName)
	return canned[es.rng.Intn(len(canned))]
}

func cannedCrises(memberName string) []*domain.CrisisEvent {
	return []*domain.CrisisEvent{
		{
			Title:       "SNS 운영 미숙",
			Description: fmt.Sprintf("%s이(가) 공식 계정에 개인적인 사진을 잘못 올려 팬들 사이에서 소소한 논란이 발생했습니다. (AI 서버 연결 실패로 인한 기본 이벤트)", memberName),
			MemberName:  memberName,
			Choices: []domain.EventChoice{
				{
					Text:          "즉시 삭제 후 가벼운 사과",
					Effect:        domain.EventEffect{Reputation: -5, Money: 0, FanCount: -1000},
					ResultMessage: "빠른 대처로 큰 문제 없이 지나갔습니다.",
				},
				{
					Text:          "무대응으로 일관",
					Effect:        domain.EventEffect{Reputation: -15, Money: 0, FanCount: -3000},
					ResultMessage: "팬들의 불만이 조금 쌓였습니다.",
				},
				{
					Text:          "담당 매니저 교체 건의",
					Effect:        domain.EventEffect{Reputation: 0, Money: -500000, FanCount: 0},
					ResultMessage: "책임을 묻는 과정에서 약간의 비용이 발생했습니다.",
				},
			},
		},
		{
			Title:       "연습실 갈등 목격담",
			Description: fmt.Sprintf("연습실에서 %s이(가) 스태프와 언쟁하는 모습이 목격되어 커뮤니티에 퍼지고 있습니다. (AI 서버 연결 실패로 인한 기본 이벤트)", memberName),
			MemberName:  memberName,
			Choices: []domain.EventChoice{
				{
					Text:          "공식 입장문으로 오해 해명",
					Effect:        domain.EventEffect{Reputation: -3, Money: 0, FanCount: -500},
					ResultMessage: "대부분의 팬이 해명을 받아들였습니다.",
				},
				{
					Text:          "당사자 직접 라이브 방송",
					Effect:        domain.EventEffect{Reputation: 5, Money: 0, FanCount: -2000},
					ResultMessage: "솔직한 모습에 호평과 악평이 엇갈렸습니다.",
				},
				{
					Text:          "법적 대응 예고",
					Effect:        domain.EventEffect{Reputation: -10, Money: -1_000_000, FanCount: 0},
					ResultMessage: "강경 대응이 오히려 화제를 키웠습니다.",
				},
			},
		},
		{
			Title:       "과거 발언 재조명",
			Description: fmt.Sprintf("%s의 데뷔 전 방송 발언이 뒤늦게 재조명되며 논란이 되고 있습니다. (AI 서버 연결 실패로 인한 기본 이벤트)", memberName),
			MemberName:  memberName,
			Choices: []domain.EventChoice{
				{
					Text:          "자필 사과문 게시",
					Effect:        domain.EventEffect{Reputation: -5, Money: 0, FanCount: -1500},
					ResultMessage: "진정성 있는 사과로 논란이 가라앉았습니다.",
				},
				{
					Text:          "맥락 설명 자료 배포",
					Effect:        domain.EventEffect{Reputation: -8, Money: -300_000, FanCount: -1000},
					ResultMessage: "설명이 길어지며 피로감을 호소하는 팬이 생겼습니다.",
				},
				{
					Text:          "활동 잠정 중단 발표",
					Effect:        domain.EventEffect{Reputation: 3, Money: -2_000_000, FanCount: -5000},
					ResultMessage: "공백기 동안 여론이 잠잠해졌습니다.",
				},
			},
		},
	}
}
