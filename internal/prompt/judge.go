package prompt

import "fmt"

// JudgeVars holds variables for the music show judging prompt
type JudgeVars struct {
	AvgVocal     int
	AvgDance     int
	AvgVisual    int
	AvgCharisma  int
	MemberCount  int
	Concept      string
	TargetMarket string
	Reputation   int64
	FanCount     int64
	Turn         int
}

// BuildJudgePrompt builds the JSON-only evaluation prompt. The score-to-rank
// table in the prompt mirrors the server-side bucket thresholds.
func BuildJudgePrompt(vars JudgeVars) string {
	return fmt.Sprintf(`너는 한국 음악 방송의 전문 심사위원이야. 아래 정보를 바탕으로 냉정하게 평가해줘.

[그룹 정보]
보컬 평균: %d/100
댄스 평균: %d/100
비주얼 평균: %d/100
카리스마 평균: %d/100
멤버 수: %d명

[음원 정보]
컨셉: %s
타겟 시장: %s
회사 평판: %d/100
현재 팬덤: %d명

[시장 상황]
현재 컴백 횟수: %d번째

아래 JSON 형식으로만 응답해. 다른 텍스트 없이:
{
  "scores": {
    "composition": 구성력 점수 0-100,
    "vocal": 보컬 완성도 점수 0-100,
    "performance": 퍼포먼스 점수 0-100,
    "popularity": 대중성 점수 0-100,
    "buzz": 화제성 점수 0-100
  },
  "totalScore": 총점 0-100,
  "chartProbability": 1위 확률 0-100,
  "comment": "심사 코멘트 2-3문장. 냉정하고 구체적으로. 칭찬과 비판 모두 포함.",
  "result": "1위" 또는 "상위권" 또는 "중위권" 또는 "하위권" 또는 "나락"
}

result 기준:
- totalScore 85이상: "1위"
- 70-84: "상위권"
- 55-69: "중위권"
- 40-54: "하위권"
- 40미만: "나락"`,
		vars.AvgVocal, vars.AvgDance, vars.AvgVisual, vars.AvgCharisma,
		vars.MemberCount,
		vars.Concept, vars.TargetMarket,
		vars.Reputation, vars.FanCount,
		vars.Turn)
}
