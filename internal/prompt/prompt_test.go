package prompt

import (
	"strings"
	"testing"
)

func TestBuildCandidatePrompt(t *testing.T) {
	out := BuildCandidatePrompt(CandidateVars{
		GenderLabel: "여자",
		Age:         19,
		Dance:       88,
		Vocal:       72,
		Visual:      95,
		Scandal:     12,
	})

	for _, want := range []string{"여자", "19세", "댄스: 88/100", "구설수 리스크: 12%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing %q:\n%s", want, out)
		}
	}
}

func TestBuildLyricsPromptDemandsSectionMarkers(t *testing.T) {
	out := BuildLyricsPrompt(LyricsVars{
		GroupName:    "COMET",
		Concept:      "summer",
		TargetMarket: "global",
		MemberCount:  4,
	})

	for _, want := range []string{"COMET", "[Chorus]", "[Bridge]", "멤버 수: 4명"} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildJudgePromptCarriesRankTable(t *testing.T) {
	out := BuildJudgePrompt(JudgeVars{
		AvgVocal:     70,
		AvgDance:     80,
		AvgVisual:    75,
		AvgCharisma:  65,
		MemberCount:  3,
		Concept:      "intense",
		TargetMarket: "japan",
		Reputation:   50,
		FanCount:     30000,
		Turn:         2,
	})

	for _, want := range []string{`"1위"`, `"나락"`, "chartProbability", "2번째"} {
		if !strings.Contains(out, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildEventPromptPinsMemberName(t *testing.T) {
	out := BuildEventPrompt(EventVars{
		MemberName: "김서연",
		Scandal:    55,
		Romance:    30,
		Reputation: 40,
		FanCount:   10000,
		Money:      5000000,
	})

	if strings.Count(out, "김서연") != 2 {
		t.Fatalf("member name must appear in both the situation and the schema:\n%s", out)
	}
	if !strings.Contains(out, `"choices"`) {
		t.Fatal("prompt missing choices schema")
	}
}
