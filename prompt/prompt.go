package prompt

import (
	"fmt"
	"strings"

	"menu-analyze-service/models"
)

// instructions is the fixed task framing sent ahead of the menu inputs. The
// allergy-alert decision rule lives here so the model applies it consistently;
// this service never re-derives alerts on its own.
const instructions = "You are a culinary menu expert. Extract dishes from the provided images and/or OCR text. " +
	"Infer allergens conservatively. Translate dish names and descriptions into the target language. " +
	"Given user_allergies, assign a per-dish 'allergy_alert' as one of: safe, contains, may_contain, unknown. " +
	"If ingredients clearly include a user allergen -> 'contains'. If uncertain wording suggests possible presence " +
	"(e.g., 'may contain traces', 'sauce may include peanuts') -> 'may_contain'. If explicit absence -> 'safe'. " +
	"Else 'unknown'. Return ONLY the function call 'return_menu' with JSON matching the schema."

// Image is an inline-image fragment: raw bytes plus their mime type.
type Image struct {
	Data     []byte
	MimeType string
}

// Fragment is one unit of the request sent to the inference provider, either
// text or an inline image. Exactly one of the two fields is set.
type Fragment struct {
	Text  string
	Image *Image
}

// BuildFragments turns an analysis request into the ordered fragment list the
// provider sees. Order is significant: instructions first, then metadata,
// then OCR text, then images in input order. Nothing is validated here;
// malformed images pass through as opaque bytes and a request with neither
// images nor OCR text still produces the instruction and metadata fragments.
func BuildFragments(req *models.AnalyzeRequest) []Fragment {
	allergies := make([]string, 0, len(req.UserAllergies))
	for _, a := range req.UserAllergies {
		a = strings.TrimSpace(a)
		if a != "" {
			allergies = append(allergies, a)
		}
	}

	fragments := []Fragment{
		{Text: instructions},
		{Text: fmt.Sprintf("target_language=%s", req.TargetLanguage)},
		{Text: fmt.Sprintf("user_allergies=%s", strings.Join(allergies, ","))},
	}

	if req.Currency != "" {
		fragments = append(fragments, Fragment{Text: fmt.Sprintf("currency=%s", req.Currency)})
	}
	if req.OCRText != "" {
		fragments = append(fragments, Fragment{Text: "OCR:\n" + req.OCRText})
	}

	for _, img := range req.Images {
		mime := img.MimeType
		if mime == "" {
			mime = "image/jpeg"
		}
		fragments = append(fragments, Fragment{Image: &Image{Data: img.Data, MimeType: mime}})
	}

	return fragments
}
