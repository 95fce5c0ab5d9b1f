package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/domain"
)

type failingAudio struct{}

func (failingAudio) GenerateAudio(ctx context.Context, mood, color string, memberCount int) (string, error) {
	return "", errors.New("audio backend down")
}

type stubAudio struct{}

func (stubAudio) GenerateAudio(ctx context.Context, mood, color string, memberCount int) (string, error) {
	return "https://cdn.example.com/track.wav", nil
}

func TestExtractHook(t *testing.T) {
	cases := []struct {
		name   string
		lyrics string
		want   string
	}{
		{
			name:   "two chorus lines",
			lyrics: "[Verse 1]\n달려가\n[Chorus]\n더 높이 날아 (날아)\n멈추지 않아\n세 번째 줄\n[Bridge]\n잠시 쉬어",
			want:   "더 높이 날아 (날아)\n멈추지 않아",
		},
		{
			name:   "single chorus line",
			lyrics: "[Chorus]\nOnly line",
			want:   "Only line",
		},
		{
			name:   "no chorus marker falls back to the first line",
			lyrics: "첫 줄이 후크\n둘째 줄",
			want:   "첫 줄이 후크",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractHook(tc.lyrics); got != tc.want {
				t.Fatalf("ExtractHook = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestProduceTrackHappyPath(t *testing.T) {
	gen := &fakeGenerator{text: "[Verse 1]\n꿈을 향해\n[Chorus]\n더 높이 (높이)\n더 멀리"}
	ps := NewProducerService(gen, stubAudio{}, zap.NewNop())

	track := ps.ProduceTrack(context.Background(), "COMET", domain.ConceptSummer, domain.MarketGlobal, nil, 7_000_000)

	if track.Title != "COMET - Summer Pop" {
		t.Fatalf("unexpected title %q", track.Title)
	}
	if track.Lyrics.Hook != "더 높이 (높이)\n더 멀리" {
		t.Fatalf("unexpected hook %q", track.Lyrics.Hook)
	}
	if track.AudioURL != "https://cdn.example.com/track.wav" {
		t.Fatalf("audio url must come from the backend, got %q", track.AudioURL)
	}
	if track.Cost != 7_000_000 {
		t.Fatalf("cost must be carried on the track, got %d", track.Cost)
	}
	if track.ID == "" {
		t.Fatal("track must get an id")
	}
	if !strings.Contains(gen.lastPrompt, "COMET") {
		t.Fatal("lyrics prompt must carry the group name")
	}
}

func TestProduceTrackLyricsFallback(t *testing.T) {
	gen := &fakeGenerator{textErr: errors.New("backend down")}
	ps := NewProducerService(gen, stubAudio{}, zap.NewNop())

	track := ps.ProduceTrack(context.Background(), "COMET", domain.ConceptBallad, domain.MarketDomestic, nil, 5_000_000)

	if track.Lyrics.Full != fallbackLyrics || track.Lyrics.Hook != fallbackHook {
		t.Fatalf("expected fallback lyrics, got %+v", track.Lyrics)
	}
	// A lyrics failure alone does not mark the title.
	if track.Title != "COMET - Ballad Pop" {
		t.Fatalf("unexpected title %q", track.Title)
	}
}

func TestProduceTrackAudioFallbackMarksTitle(t *testing.T) {
	gen := &fakeGenerator{text: "[Chorus]\nhook line"}
	ps := NewProducerService(gen, failingAudio{}, zap.NewNop())

	track := ps.ProduceTrack(context.Background(), "COMET", domain.ConceptHipHop, domain.MarketJapan, nil, 6_000_000)

	if !strings.HasSuffix(track.Title, " (Silent Fallback)") {
		t.Fatalf("expected silent fallback marker, got %q", track.Title)
	}
	if track.AudioURL != silentWAV {
		t.Fatal("failed audio must ship the silent clip")
	}
}

func TestProduceTrackWithoutAudioBackendMarksTitle(t *testing.T) {
	gen := &fakeGenerator{text: "[Chorus]\nhook line"}
	ps := NewProducerService(gen, nil, zap.NewNop())

	track := ps.ProduceTrack(context.Background(), "COMET", domain.ConceptSummer, domain.MarketDomestic, nil, 5_000_000)

	if track.Title != "COMET - Summer Pop (Silent Fallback)" {
		t.Fatalf("default wiring must mark the title, got %q", track.Title)
	}
	if track.AudioURL != silentWAV {
		t.Fatal("default wiring must ship the silent clip")
	}
}
