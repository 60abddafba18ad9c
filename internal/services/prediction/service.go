package prediction

import (
	"context"
	"log"
	"math/rand"

	"github.com/ivankudzin/soulmate/backend/internal/domain/model"
)

// TextGenerator is the text-generation collaborator. A nil generator means
// no credential is configured; the service then never attempts a call.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator turns a portrait description into an image URL.
type ImageGenerator interface {
	Generate(ctx context.Context, description string) (string, error)
}

// PortraitStore re-hosts a short-lived provider image URL on own storage.
type PortraitStore interface {
	Rehost(ctx context.Context, srcURL string) (string, error)
}

// Observer receives usage signals for counters.
type Observer interface {
	ObservePrediction(ctx context.Context, fromFallback bool)
}

type Service struct {
	text      TextGenerator
	image     ImageGenerator
	portraits PortraitStore
	observer  Observer
	intn      func(n int) int
}

func NewService(text TextGenerator, image ImageGenerator) *Service {
	return &Service{
		text:  text,
		image: image,
		intn:  rand.Intn,
	}
}

// AttachPortraitStore enables re-hosting of generated portraits.
func (s *Service) AttachPortraitStore(store PortraitStore) {
	s.portraits = store
}

// AttachObserver enables usage counters.
func (s *Service) AttachObserver(observer Observer) {
	s.observer = observer
}

// Predict builds the instruction from the profile, asks the text generator
// and shapes the reply into a complete MatchResult. It never fails: any
// collaborator error or unusable reply degrades to canned content, so the
// caller always receives a card with every field present.
func (s *Service) Predict(ctx context.Context, profile model.Profile) model.MatchResult {
	reply, ok := s.callText(ctx, buildPredictionPrompt(profile))
	if !ok {
		result := s.fallbackMatchResult()
		s.observe(ctx, true)
		return result
	}

	result, fromFallback := s.shapeMatchResult(reply)

	// The portrait step runs only after a successful text exchange; its
	// failures never surface, the card just stays text-only.
	if result.ImageDescription != "" && s.image != nil {
		if url, err := s.image.Generate(ctx, result.ImageDescription); err != nil {
			log.Printf("warning: portrait generation failed: %v", err)
		} else {
			result.ImageURL = &url
		}
	}
	if result.ImageURL != nil && s.portraits != nil {
		if hosted, err := s.portraits.Rehost(ctx, *result.ImageURL); err != nil {
			log.Printf("warning: portrait re-hosting failed: %v", err)
		} else {
			result.ImageURL = &hosted
		}
	}

	s.observe(ctx, fromFallback)
	return result
}

func (s *Service) callText(ctx context.Context, prompt string) (string, bool) {
	if s.text == nil {
		return "", false
	}

	reply, err := s.text.Generate(ctx, prompt)
	if err != nil {
		log.Printf("warning: text generation failed, using fallback: %v", err)
		return "", false
	}
	return reply, true
}

// shapeMatchResult extracts the JSON payload from a free-text reply and
// fills every gap from the fallback pools. The second return reports
// whether the whole payload had to be synthesized.
func (s *Service) shapeMatchResult(reply string) (model.MatchResult, bool) {
	payload, ok := parseMatchPayload(reply)
	if !ok {
		return s.fallbackMatchResult(), true
	}

	result := model.MatchResult{
		Title:            payload.Title,
		Description:      payload.Description,
		Tip:              payload.Tip,
		ImageDescription: payload.ImageDescription,
		Radar:            make(map[string]int, 5),
	}

	if result.Title == "" {
		result.Title = titlePrefix + s.pick(fallbackTitles)
	}
	if result.Description == "" {
		result.Description = s.pick(fallbackDescriptions)
	}
	if result.Tip == "" {
		result.Tip = s.pick(fallbackTips)
	}
	if result.ImageDescription == "" {
		result.ImageDescription = s.pick(fallbackImageDescriptions)
	}

	for _, category := range model.RadarCategories() {
		if v, ok := payload.Radar[category]; ok {
			result.Radar[category] = int(v)
			continue
		}
		result.Radar[category] = s.radarScore(category)
	}

	return result, false
}

func (s *Service) observe(ctx context.Context, fromFallback bool) {
	if s.observer != nil {
		s.observer.ObservePrediction(ctx, fromFallback)
	}
}
