package prompt

import "fmt"

// EventVars holds variables for the crisis event prompt
type EventVars struct {
	MemberName string
	Scandal    int
	Romance    int
	Reputation int64
	FanCount   int64
	Money      int64
}

// BuildEventPrompt builds the JSON-only crisis generation prompt. The effect
// numbers in the sample choices anchor the model to sane magnitudes.
func BuildEventPrompt(vars EventVars) string {
	return fmt.Sprintf(`K-pop 기획사 경영 게임의 위기 이벤트를 생성해줘.

[상황]
위험 멤버: %s (구설수 %d%%, 열애설 %d%%)
회사 평판: %d/100
현재 팬덤: %d명
자금: %d원

아래 JSON 형식으로만 응답해. 다른 텍스트 없이:
{
  "title": "이벤트 제목 (10자 이내)",
  "description": "상황 설명 (2문장, 구체적이고 현실적으로)",
  "memberName": "%s",
  "choices": [
    {
      "text": "선택지 1 텍스트 (빠른 대응)",
      "effect": { "reputation": -10, "money": 0, "fanCount": -5000 },
      "resultMessage": "선택 결과 한 문장"
    },
    {
      "text": "선택지 2 텍스트 (소극적 대응)",
      "effect": { "reputation": -30, "money": 0, "fanCount": -20000 },
      "resultMessage": "선택 결과 한 문장"
    },
    {
      "text": "선택지 3 텍스트 (비용 들지만 확실한 해결)",
      "effect": { "reputation": -5, "money": -3000000, "fanCount": -1000 },
      "resultMessage": "선택 결과 한 문장"
    }
  ]
}`,
		vars.MemberName, vars.Scandal, vars.Romance,
		vars.Reputation, vars.FanCount, vars.Money,
		vars.MemberName)
}
