package stubllm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"menu-analyze-service/models"
	"menu-analyze-service/prompt"
)

// Client is a deterministic, no-network inference stub intended for CI and
// local end-to-end tests. It returns a schema-valid menu result so the full
// pipeline (backfill, rendering, artifact writing) is exercised without
// calling the provider.
type Client struct{}

func NewClient() *Client { return &Client{} }

func (c *Client) SourceName() string { return "Stub" }

func (c *Client) AnalyzeMenu(ctx context.Context, fragments []prompt.Fragment) (*models.MenuAnalysis, error) {
	// Make output deterministic per-input so tests are stable.
	h := sha256.New()
	for _, f := range fragments {
		if f.Image != nil {
			h.Write(f.Image.Data)
			continue
		}
		h.Write([]byte(f.Text))
	}
	short := hex.EncodeToString(h.Sum(nil)[:4])

	amount := 9.5
	spice := 1
	vegetarian := true

	return &models.MenuAnalysis{
		MenuLanguage: "und",
		Dishes: []models.Dish{
			{
				DishID: "stub-1",
				Name: models.LocalizedText{
					Src:        "Stub dish " + short,
					Translated: "Stub dish " + short,
				},
				Description: models.LocalizedText{
					Translated: "Deterministic dish generated from " + summarize(fragments),
				},
				Price:         models.Price{Amount: &amount, Currency: "EUR"},
				Ingredients:   []string{"flour", "water"},
				FlavorProfile: []string{"savory"},
				Dietary: models.Dietary{
					ContainsAllergens: []string{"gluten"},
					Vegetarian:        &vegetarian,
				},
				KidsFriendly: models.KidsYes,
				SpiceLevel:   &spice,
				AllergyAlert: models.AlertUnknown,
			},
		},
		Notes:     []string{"stubbed result, not a real analysis"},
		RequestID: "req_" + short,
	}, nil
}

func summarize(fragments []prompt.Fragment) string {
	texts := 0
	images := 0
	for _, f := range fragments {
		if f.Image != nil {
			images++
		} else {
			texts++
		}
	}
	return fmt.Sprintf("%d text and %d image fragments", texts, images)
}
