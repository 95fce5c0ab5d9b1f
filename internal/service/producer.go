package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkjy/idol-tycoon-go/internal/constants"
	"github.com/parkjy/idol-tycoon-go/internal/domain"
	"github.com/parkjy/idol-tycoon-go/internal/prompt"
)

// silentWAV is a data URI with an empty PCM payload, shipped when no audio
// backend produced a real track.
const silentWAV = "data:audio/wav;base64,UklGRiQAAABXQVZFZm10IBAAAAABAAEAQB8AAEAfAAABAAgAZGF0YQAAAAA="

const fallbackLyrics = "[Verse 1]\nAI 서버 이슈로 기본 가사 제공\n...\n[Chorus]\nFallback Hook!\n..."
const fallbackHook = "Fallback Hook!"

var chorusPattern = regexp.MustCompile(`(?is)\[Chorus\]([\s\S]*?)(\[|$)`)

// AudioGenerator produces a playable URL for a track brief.
type AudioGenerator interface {
	GenerateAudio(ctx context.Context, mood, color string, memberCount int) (string, error)
}

// ErrAudioUnavailable reports that no real audio backend is wired. The
// producer ships the silent clip and marks the title, same as any other
// audio failure.
var ErrAudioUnavailable = errors.New("audio backend not configured")

// MockAudioGenerator stands in for the music backend until a real audio API
// is wired up. It always declines so tracks are visibly marked as silent.
type MockAudioGenerator struct{}

func (MockAudioGenerator) GenerateAudio(ctx context.Context, mood, color string, memberCount int) (string, error) {
	return "", ErrAudioUnavailable
}

// ProducerService writes lyrics and commissions audio for a new release.
// Both halves are best effort; a playable track always comes back, with the
// title marked when the audio is a stand-in.
type ProducerService struct {
	generator Generator
	audio     AudioGenerator
	logger    *zap.Logger
}

func NewProducerService(generator Generator, audio AudioGenerator, logger *zap.Logger) *ProducerService {
	if audio == nil {
		audio = MockAudioGenerator{}
	}
	return &ProducerService{
		generator: generator,
		audio:     audio,
		logger:    logger,
	}
}

// ProduceTrack builds the full track for the given brief. cost is the amount
// already charged for this session and is carried on the track for display.
func (ps *ProducerService) ProduceTrack(ctx context.Context, groupName string, concept domain.ConceptType, market domain.MarketType, members []*domain.Idol, cost int64) *domain.Track {
	ctx, cancel := context.WithTimeout(ctx, constants.Collaborator.ProduceTimeout)
	defer cancel()

	lyrics := ps.writeLyrics(ctx, groupName, concept, market, len(members))
	audioURL, audioFallback := ps.commissionAudio(ctx, concept, market, len(members))

	title := fmt.Sprintf("%s - %s Pop", groupName, capitalize(string(concept)))
	if audioFallback {
		title += " (Silent Fallback)"
	}

	return &domain.Track{
		ID:           uuid.NewString(),
		Title:        title,
		Concept:      concept,
		TargetMarket: market,
		Lyrics:       lyrics,
		AudioURL:     audioURL,
		Members:      members,
		Cost:         cost,
	}
}

func (ps *ProducerService) writeLyrics(ctx context.Context, groupName string, concept domain.ConceptType, market domain.MarketType, memberCount int) domain.Lyrics {
	p := prompt.BuildLyricsPrompt(prompt.LyricsVars{
		GroupName:    groupName,
		Concept:      string(concept),
		TargetMarket: string(market),
		MemberCount:  memberCount,
	})

	text, _, err := ps.generator.GenerateText(ctx, p, PresetCreative, nil)
	if err != nil {
		ps.logger.Warn("Lyrics generation failed, using fallback",
			zap.String("group", groupName),
			zap.Error(err))
		return domain.Lyrics{Full: fallbackLyrics, Hook: fallbackHook}
	}

	return domain.Lyrics{Full: text, Hook: ExtractHook(text)}
}

func (ps *ProducerService) commissionAudio(ctx context.Context, concept domain.ConceptType, market domain.MarketType, memberCount int) (string, bool) {
	mood := prompt.ConceptMoods[string(concept)]
	color := prompt.MarketColors[string(market)]

	audioURL, err := ps.audio.GenerateAudio(ctx, mood, color, memberCount)
	if err != nil {
		if errors.Is(err, ErrAudioUnavailable) {
			ps.logger.Debug("No audio backend, shipping silent clip")
		} else {
			ps.logger.Warn("Audio generation failed, shipping silent clip", zap.Error(err))
		}
		return silentWAV, true
	}
	return audioURL, false
}

// ExtractHook pulls the first two chorus lines out of full lyrics. Without a
// chorus marker the first line stands in.
func ExtractHook(lyrics string) string {
	if matches := chorusPattern.FindStringSubmatch(lyrics); len(matches) > 1 {
		chorus := strings.TrimSpace(matches[1])
		if chorus != "" {
			lines := strings.Split(chorus, "\n")
			if len(lines) > 2 {
				lines = lines[:2]
			}
			return strings.Join(lines, "\n")
		}
	}
	return strings.Split(lyrics, "\n")[0]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
