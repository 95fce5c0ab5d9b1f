package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/engine"
)

// fakeGenerator returns scripted responses and records the last prompt.
type fakeGenerator struct {
	text    string
	textErr error
	jsonDoc string
	jsonErr error

	lastPrompt string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (string, *GenerateMetadata, error) {
	f.lastPrompt = prompt
	if f.textErr != nil {
		return "", nil, f.textErr
	}
	return f.text, &GenerateMetadata{Provider: "fake"}, nil
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	f.lastPrompt = prompt
	if f.jsonErr != nil {
		return nil, f.jsonErr
	}
	if err := json.Unmarshal([]byte(f.jsonDoc), dest); err != nil {
		return nil, err
	}
	return &GenerateMetadata{Provider: "fake"}, nil
}

func TestGenerateCandidatesFullBatch(t *testing.T) {
	gen := &fakeGenerator{text: "비주얼 압도적이나 보컬 보완 필수"}
	cs := NewCastingService(gen, engine.NewSeededRNG(42), zap.NewNop())

	candidates := cs.GenerateCandidates(context.Background(), constants.Casting.BatchSize)

	if len(candidates) != constants.Casting.BatchSize {
		t.Fatalf("expected %d candidates, got %d", constants.Casting.BatchSize, len(candidates))
	}

	seen := make(map[string]bool)
	for _, c := range candidates {
		if c == nil {
			t.Fatal("batch must not contain nil slots")
		}
		if c.ID == "" || seen[c.ID] {
			t.Fatalf("candidate ids must be unique and set, got %q", c.ID)
		}
		seen[c.ID] = true

		if c.Name == "" {
			t.Fatal("candidate must have a name")
		}
		if c.Age < constants.Candidate.MinAge || c.Age > constants.Candidate.MaxAge {
			t.Fatalf("age %d out of band", c.Age)
		}
		for _, stat := range []int{c.Stats.Dance, c.Stats.Vocal, c.Stats.Visual, c.Stats.Charisma} {
			if stat < constants.Candidate.StatFloor || stat >= constants.Candidate.StatFloor+constants.Candidate.StatSpread {
				t.Fatalf("stat %d out of band", stat)
			}
		}
		if c.Risk.Scandal >= constants.Candidate.ScandalMax || c.Risk.Romance >= constants.Candidate.RomanceMax || c.Risk.Conflict >= constants.Candidate.ConflictMax {
			t.Fatalf("risk out of band: %+v", c.Risk)
		}
		if c.PortraitURL == "" {
			t.Fatal("candidate must have a portrait")
		}
		if c.Analysis != "비주얼 압도적이나 보컬 보완 필수" {
			t.Fatalf("unexpected analysis %q", c.Analysis)
		}
		if !c.IsActive {
			t.Fatal("fresh candidates start active")
		}
	}
}

func TestGenerateCandidatesAnalysisFallback(t *testing.T) {
	gen := &fakeGenerator{textErr: errors.New("backend down")}
	cs := NewCastingService(gen, engine.NewSeededRNG(7), zap.NewNop())

	candidates := cs.GenerateCandidates(context.Background(), 2)

	if len(candidates) != 2 {
		t.Fatalf("a failed analysis must not shrink the batch, got %d", len(candidates))
	}
	for _, c := range candidates {
		if c.Analysis != analysisFallback {
			t.Fatalf("expected fallback analysis, got %q", c.Analysis)
		}
	}
}

func TestGenerateCandidatesDefaultsBatchSize(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	cs := NewCastingService(gen, engine.NewSeededRNG(1), zap.NewNop())

	if got := len(cs.GenerateCandidates(context.Background(), 0)); got != constants.Casting.BatchSize {
		t.Fatalf("expected default batch of %d, got %d", constants.Casting.BatchSize, got)
	}
}
