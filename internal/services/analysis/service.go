package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/ivankudzin/soulmate/backend/internal/domain/model"
)

// MaxInputRunes caps the free-form self-description accepted by transport.
const MaxInputRunes = 1000

// TextGenerator is the text-generation collaborator; nil means no
// credential is configured and the service goes straight to canned output.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Observer receives usage signals for counters.
type Observer interface {
	ObserveAnalysis(ctx context.Context, fromFallback bool)
}

type Service struct {
	text     TextGenerator
	observer Observer
}

func NewService(text TextGenerator) *Service {
	return &Service{text: text}
}

func (s *Service) AttachObserver(observer Observer) {
	s.observer = observer
}

const analysisSystemPreamble = `你是一个专业的心理分析师，擅长通过用户的自我描述，深入分析其性格特点、心理状态，并提供专业的建议和指导。请用中文回答，语气要温暖、理解、支持性。`

// Analyze turns a free-form self-description into the four-section result.
// Like Predict, it never fails: any collaborator error or unusable reply is
// replaced per-field with the fixed fallback texts.
func (s *Service) Analyze(ctx context.Context, text string) model.PersonalityResult {
	if s.text == nil {
		s.observe(ctx, true)
		return fallbackResult()
	}

	reply, err := s.text.Generate(ctx, buildAnalysisPrompt(text))
	if err != nil {
		log.Printf("warning: personality analysis failed, using fallback: %v", err)
		s.observe(ctx, true)
		return fallbackResult()
	}

	result, fromFallback := shapeResult(reply)
	s.observe(ctx, fromFallback)
	return result
}

func buildAnalysisPrompt(text string) string {
	var b strings.Builder

	b.WriteString(analysisSystemPreamble)
	b.WriteString("\n\n请根据用户提供的自我描述，进行深度的性格和心理状态分析。要求：\n\n")
	fmt.Fprintf(&b, "用户描述：\n%s\n", text)
	b.WriteString(`
请生成一个JSON格式的分析结果，包含以下字段：
{
  "personalityTraits": "[详细分析用户的性格特点，包括性格类型、行为模式、思维特点等，200-300字]",
  "mentalState": "[分析用户当前的心理状态，包括情绪状态、压力水平、心理需求等，200-300字]",
  "suggestions": "[基于分析结果，给出针对性的建议和指导，帮助用户更好地了解自己、调整心态、改善状态，200-300字]",
  "summary": "[一段简洁的总结，概括用户的核心性格特征和当前状态，100-150字]"
}

重要提示：
1. 分析要深入、专业、有洞察力
2. 语气要温暖、理解、支持性
3. 建议要实用、具体、可操作
4. 请确保返回的是有效的JSON格式，不要包含任何额外的文字说明。`)

	return b.String()
}

type analysisPayload struct {
	PersonalityTraits string `json:"personalityTraits"`
	MentalState       string `json:"mentalState"`
	Suggestions       string `json:"suggestions"`
	Summary           string `json:"summary"`
}

func shapeResult(reply string) (model.PersonalityResult, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return fallbackResult(), true
	}

	var payload analysisPayload
	if err := json.Unmarshal([]byte(reply[start:end+1]), &payload); err != nil {
		return fallbackResult(), true
	}

	result := model.PersonalityResult{
		PersonalityTraits: payload.PersonalityTraits,
		MentalState:       payload.MentalState,
		Suggestions:       payload.Suggestions,
		Summary:           payload.Summary,
	}
	if result.PersonalityTraits == "" {
		result.PersonalityTraits = fallbackPersonalityTraits
	}
	if result.MentalState == "" {
		result.MentalState = fallbackMentalState
	}
	if result.Suggestions == "" {
		result.Suggestions = fallbackSuggestions
	}
	if result.Summary == "" {
		result.Summary = fallbackSummary
	}

	return result, false
}

func (s *Service) observe(ctx context.Context, fromFallback bool) {
	if s.observer != nil {
		s.observer.ObserveAnalysis(ctx, fromFallback)
	}
}
