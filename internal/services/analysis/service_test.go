package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type textGeneratorStub struct {
	reply string
	err   error
	calls int
}

func (s *textGeneratorStub) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestAnalyzeWithoutGeneratorUsesFallback(t *testing.T) {
	service := NewService(nil)

	result := service.Analyze(context.Background(), "我最近总是睡不好。")

	if result.PersonalityTraits != fallbackPersonalityTraits ||
		result.MentalState != fallbackMentalState ||
		result.Suggestions != fallbackSuggestions ||
		result.Summary != fallbackSummary {
		t.Fatalf("expected full fallback result, got %+v", result)
	}
}

func TestAnalyzeFallsBackOnGeneratorError(t *testing.T) {
	text := &textGeneratorStub{err: errors.New("api: 503")}
	service := NewService(text)

	result := service.Analyze(context.Background(), "我喜欢独处。")

	if result.Summary != fallbackSummary {
		t.Fatalf("expected fallback summary, got %q", result.Summary)
	}
	if text.calls != 1 {
		t.Fatalf("expected one generator call, got %d", text.calls)
	}
}

func TestAnalyzeFallsBackOnNonJSONReply(t *testing.T) {
	service := NewService(&textGeneratorStub{reply: "抱歉，我无法处理这个请求。"})

	result := service.Analyze(context.Background(), "我喜欢独处。")

	if result.PersonalityTraits != fallbackPersonalityTraits {
		t.Fatalf("expected fallback traits, got %q", result.PersonalityTraits)
	}
}

func TestAnalyzeFillsMissingFieldsOnly(t *testing.T) {
	service := NewService(&textGeneratorStub{reply: `分析如下：
{"personalityTraits":"你是一个目标感很强的人。","summary":"目标感强，张弛有度。"}`})

	result := service.Analyze(context.Background(), "我每天都排满了计划。")

	if result.PersonalityTraits != "你是一个目标感很强的人。" {
		t.Fatalf("provided field must pass through, got %q", result.PersonalityTraits)
	}
	if result.Summary != "目标感强，张弛有度。" {
		t.Fatalf("provided field must pass through, got %q", result.Summary)
	}
	if result.MentalState != fallbackMentalState {
		t.Fatalf("missing mentalState must be filled, got %q", result.MentalState)
	}
	if result.Suggestions != fallbackSuggestions {
		t.Fatalf("missing suggestions must be filled, got %q", result.Suggestions)
	}
}

func TestBuildAnalysisPromptEmbedsUserText(t *testing.T) {
	prompt := buildAnalysisPrompt("我最近换了城市，还在适应。")

	if !strings.Contains(prompt, "我最近换了城市，还在适应。") {
		t.Fatalf("prompt missing user text:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"mentalState"`) {
		t.Fatalf("prompt missing schema hint:\n%s", prompt)
	}
}
