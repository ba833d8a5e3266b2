package stubllm

import (
	"context"
	"reflect"
	"testing"

	"menu-analyze-service/models"
	"menu-analyze-service/prompt"
)

func TestAnalyzeMenuDeterministic(t *testing.T) {
	c := NewClient()
	fragments := prompt.BuildFragments(&models.AnalyzeRequest{
		TargetLanguage: "en",
		OCRText:        "Pizza Margherita 8.50",
	})

	first, err := c.AnalyzeMenu(context.Background(), fragments)
	if err != nil {
		t.Fatalf("AnalyzeMenu() unexpected error: %v", err)
	}
	second, err := c.AnalyzeMenu(context.Background(), fragments)
	if err != nil {
		t.Fatalf("AnalyzeMenu() unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("stub output differs across identical calls:\n%+v\n%+v", first, second)
	}
	if len(first.Dishes) == 0 {
		t.Error("stub must return at least one schema-valid dish")
	}
	if first.RequestID == "" {
		t.Error("stub must stamp a request id")
	}
}

func TestAnalyzeMenuVariesWithInput(t *testing.T) {
	c := NewClient()

	a, _ := c.AnalyzeMenu(context.Background(), prompt.BuildFragments(&models.AnalyzeRequest{TargetLanguage: "en", OCRText: "menu A"}))
	b, _ := c.AnalyzeMenu(context.Background(), prompt.BuildFragments(&models.AnalyzeRequest{TargetLanguage: "en", OCRText: "menu B"}))

	if a.Dishes[0].Name.Src == b.Dishes[0].Name.Src {
		t.Error("stub output should vary with different inputs")
	}
}
