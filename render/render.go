package render

import (
	"fmt"
	"strconv"
	"strings"

	"menu-analyze-service/models"
)

// Badge colors per allergy alert. Values outside the known four fall back to
// the unknown gray instead of erroring.
var alertColors = map[string]string{
	models.AlertSafe:       "#16a34a",
	models.AlertContains:   "#dc2626",
	models.AlertMayContain: "#f59e0b",
	models.AlertUnknown:    "#6b7280",
}

const unknownAlertColor = "#6b7280"

// HTML renders a structured menu result into a self-contained HTML document.
// It is a pure function: identical input produces byte-identical output, and
// every absent field maps to a display default rather than an error.
func HTML(m *models.MenuAnalysis) string {
	var cards strings.Builder
	for _, d := range m.Dishes {
		cards.WriteString(dishCard(&d, m.Currency))
	}

	body := cards.String()
	if body == "" {
		body = "<p>No dishes parsed.</p>"
	}

	currency := m.Currency
	if currency == "" {
		currency = "—"
	}
	allergies := strings.Join(m.UserAllergies, ", ")
	if allergies == "" {
		allergies = "None declared"
	}

	return fmt.Sprintf(`<!doctype html>
<html lang="%s">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Menu Analysis</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; margin: 24px; color:#111827; }
  </style>
</head>
<body>
  <h1 style="margin-bottom:6px;">Menu analysis</h1>
  <div style="color:#6b7280;margin-bottom:18px;">
    Target language: <strong>%s</strong> · Currency: <strong>%s</strong> · Your allergies: <strong>%s</strong>
  </div>
  %s
  <p style="margin-top:24px;color:#6b7280;font-size:12px;">Allergy alerts are best-effort; verify with restaurant staff if you have severe allergies.</p>
</body>
</html>
`, m.TargetLanguage, m.TargetLanguage, currency, allergies, body)
}

// displayName prefers the translated name, then the source name, then a
// literal placeholder.
func displayName(d *models.Dish) string {
	if d.Name.Translated != "" {
		return d.Name.Translated
	}
	if d.Name.Src != "" {
		return d.Name.Src
	}
	return "Dish"
}

// displayDescription prefers the translated description, then the source,
// then empty.
func displayDescription(d *models.Dish) string {
	if d.Description.Translated != "" {
		return d.Description.Translated
	}
	return d.Description.Src
}

func alertColor(alert string) string {
	if color, ok := alertColors[alert]; ok {
		return color
	}
	return unknownAlertColor
}

func badge(text string) string {
	return fmt.Sprintf(`<span style="display:inline-block;padding:2px 8px;border-radius:12px;background:#eee;margin-right:6px;font-size:12px;">%s</span>`, text)
}

// chips assembles the attribute chips in fixed order: kids friendliness
// (omitted when unknown), spice level (whenever present, including 0),
// flavor tags in input order, vegetarian, vegan.
func chips(d *models.Dish) []string {
	var out []string
	if d.KidsFriendly != "" && d.KidsFriendly != models.KidsUnknown {
		out = append(out, "kids: "+d.KidsFriendly)
	}
	if d.SpiceLevel != nil {
		out = append(out, fmt.Sprintf("spice:%d", *d.SpiceLevel))
	}
	out = append(out, d.FlavorProfile...)
	if d.Dietary.Vegetarian != nil && *d.Dietary.Vegetarian {
		out = append(out, "vegetarian")
	}
	if d.Dietary.Vegan != nil && *d.Dietary.Vegan {
		out = append(out, "vegan")
	}
	return out
}

// priceLine concatenates amount and currency with a space. Missing parts
// render as empty strings. A dish without its own currency inherits the
// menu-level one.
func priceLine(d *models.Dish, menuCurrency string) string {
	amount := ""
	if d.Price.Amount != nil {
		amount = strconv.FormatFloat(*d.Price.Amount, 'f', -1, 64)
	}
	currency := d.Price.Currency
	if currency == "" {
		currency = menuCurrency
	}
	return amount + " " + currency
}

func dishCard(d *models.Dish, menuCurrency string) string {
	alert := d.AllergyAlert
	if alert == "" {
		alert = models.AlertUnknown
	}

	var chipsHTML []string
	for _, c := range chips(d) {
		chipsHTML = append(chipsHTML, badge(c))
	}

	allergens := strings.Join(d.Dietary.ContainsAllergens, ", ")
	if allergens == "" {
		allergens = "—"
	}

	return fmt.Sprintf(`
<div style="border:1px solid #e5e7eb;border-radius:14px;padding:16px;margin-bottom:14px;">
  <div style="display:flex;justify-content:space-between;align-items:center;">
    <h3 style="margin:0 0 8px 0;">%s</h3>
    <span style="background:%s;color:white;padding:4px 10px;border-radius:12px;font-size:12px;">allergy: %s</span>
  </div>
  <div style="color:#6b7280;margin-bottom:6px;">%s</div>
  <div style="margin:8px 0 12px 0;">%s</div>
  <div style="display:flex;gap:16px;flex-wrap:wrap;margin-bottom:8px;">
    <div><strong>Allergens (detected):</strong> %s</div>
    <div><strong>Price:</strong> %s</div>
  </div>
  <div>%s</div>
</div>
`,
		displayName(d),
		alertColor(alert),
		alert,
		d.Name.Src,
		displayDescription(d),
		allergens,
		priceLine(d, menuCurrency),
		strings.Join(chipsHTML, " "))
}
