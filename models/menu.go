package models

import "strings"

// Allergy alert values the model may assign to a dish, relative to the
// user-declared allergens. Anything else is treated as unknown by consumers.
const (
	AlertSafe       = "safe"
	AlertContains   = "contains"
	AlertMayContain = "may_contain"
	AlertUnknown    = "unknown"
)

// Kids-friendliness values.
const (
	KidsYes          = "yes"
	KidsNo           = "no"
	KidsCautionSpicy = "caution_spicy"
	KidsUnknown      = "unknown"
)

// ImageInput is one uploaded menu photo with its declared content type.
type ImageInput struct {
	Data     []byte
	MimeType string
}

// AnalyzeRequest carries all inputs for a single menu analysis. It is built
// per call and never reused. Images and OCR text are both optional; a request
// with neither still goes out carrying only instructions and metadata.
type AnalyzeRequest struct {
	TargetLanguage string
	UserAllergies  []string
	OCRText        string
	Currency       string
	Images         []ImageInput
}

// LocalizedText is a source/translated string pair. Either side may be empty;
// consumers fall back from translated to source to a placeholder.
type LocalizedText struct {
	Src        string `json:"src,omitempty"`
	Translated string `json:"translated,omitempty"`
}

// Price of a dish. Amount is a pointer so a missing amount is distinguishable
// from zero.
type Price struct {
	Amount   *float64 `json:"amount,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

// Dietary holds the model's dietary judgments for a dish.
type Dietary struct {
	ContainsAllergens []string `json:"contains_allergens,omitempty"`
	Vegetarian        *bool    `json:"vegetarian,omitempty"`
	Vegan             *bool    `json:"vegan,omitempty"`
	GlutenFree        string   `json:"gluten_free,omitempty"`
	Halal             string   `json:"halal,omitempty"`
}

// Evidence points back at the inputs a dish was extracted from: indexes into
// the images sent with the request and spans of the OCR text.
type Evidence struct {
	ImageRefs []int    `json:"image_refs,omitempty"`
	OCRSpans  []string `json:"ocr_spans,omitempty"`
}

// Dish is one structured menu item. Only name and ingredients are required by
// the schema; every other field may be absent and rendering must degrade to a
// display default, never an error.
type Dish struct {
	DishID        string        `json:"dish_id,omitempty"`
	Name          LocalizedText `json:"name"`
	Aliases       []string      `json:"aliases,omitempty"`
	Description   LocalizedText `json:"description,omitempty"`
	Price         Price         `json:"price,omitempty"`
	Ingredients   []string      `json:"ingredients"`
	FlavorProfile []string      `json:"flavor_profile,omitempty"`
	Dietary       Dietary       `json:"dietary,omitempty"`
	KidsFriendly  string        `json:"kids_friendly,omitempty"`
	SpiceLevel    *int          `json:"spice_level,omitempty"`
	AllergyAlert  string        `json:"allergy_alert,omitempty"`
	Confidence    *float64      `json:"confidence,omitempty"`
	Evidence      Evidence      `json:"evidence,omitempty"`
}

// MenuAnalysis is the structured result of one inference call. It is decoded
// once from the model's return_menu arguments, optionally backfilled with
// request metadata, and then only read.
type MenuAnalysis struct {
	MenuLanguage   string   `json:"menu_language"`
	TargetLanguage string   `json:"target_language"`
	Currency       string   `json:"currency,omitempty"`
	UserAllergies  []string `json:"user_allergies"`
	Dishes         []Dish   `json:"dishes"`
	Notes          []string `json:"notes,omitempty"`

	// RequestID is stamped by the gateway for log correlation, never by the
	// model itself.
	RequestID string `json:"request_id,omitempty"`
}

// ParseAllergies splits a comma-separated allergy list into trimmed,
// non-empty entries. Both delivery shells accept allergies in this form.
func ParseAllergies(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
