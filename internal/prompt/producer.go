package prompt

import "fmt"

// LyricsVars holds variables for the song writing prompt
type LyricsVars struct {
	GroupName    string
	Concept      string
	TargetMarket string
	MemberCount  int
}

// BuildLyricsPrompt builds the Korean lyrics generation prompt. The section
// markers it demands are what the hook extractor keys on.
func BuildLyricsPrompt(vars LyricsVars) string {
	return fmt.Sprintf(`K-pop 그룹 %s의 신곡 가사를 한국어로 작성해줘.

컨셉: %s
타겟: %s
멤버 수: %d명

요구사항:
- [Verse 1], [Chorus], [Verse 2], [Bridge], [Chorus] 구조 필수
- 후크(Chorus)는 반복하기 쉽고 기억에 남는 라인
- 각 섹션은 4-6줄
- 자연스러운 한국어, 영어 단어 약간 믹스 가능
- 백킹보컬 에코는 괄호로 표시: "Let's go (go)"

가사만 출력, 설명 없이.`,
		vars.GroupName, vars.Concept, vars.TargetMarket, vars.MemberCount)
}

// ConceptMoods describes each concept for the audio generation backend.
var ConceptMoods = map[string]string{
	"summer":  "cheerful, refreshing, carefree summer vibes with bright hooks",
	"intense": "powerful, fierce, high-energy performance with heavy drops",
	"ballad":  "emotional, heartfelt, sentimental melody with gentle builds",
	"hiphop":  "urban, confident, street-style groove with punchy rhythm",
}

// MarketColors describes each target market for the audio generation backend.
var MarketColors = map[string]string{
	"domestic": "K-pop style, Korean pop sensibility",
	"japan":    "melodic J-pop influenced K-pop crossover",
	"global":   "international pop crossover with broad appeal",
}
