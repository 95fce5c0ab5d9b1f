package prompt

import "fmt"

// CandidateVars holds variables for the trainee analysis prompt
type CandidateVars struct {
	GenderLabel string
	Age         int
	Dance       int
	Vocal       int
	Visual      int
	Scandal     int
}

// BuildCandidatePrompt builds the one-line agency evaluation prompt for a
// freshly generated trainee.
func BuildCandidatePrompt(vars CandidateVars) string {
	return fmt.Sprintf(`K-pop 기획사 사장 관점에서 이 연습생을 평가해줘.
성별: %s, 나이: %d세
댄스: %d/100, 보컬: %d/100, 비주얼: %d/100
구설수 리스크: %d%%

핵심 장단점을 한 문장으로 (20-30자 이내, 한국어).
예시: "비주얼 압도적이나 보컬 보완 필수"`,
		vars.GenderLabel, vars.Age,
		vars.Dance, vars.Vocal, vars.Visual,
		vars.Scandal)
}
