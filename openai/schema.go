package openai

import "encoding/json"

// toolName is the single structured operation the model is forced to invoke.
const toolName = "return_menu"

// menuToolParameters is the JSON Schema for the return_menu arguments. The
// schema doubles as the instruction to the model about what shape to return
// and as the contract the renderer assumes when filling display defaults.
const menuToolParameters = `{
  "type": "object",
  "properties": {
    "menu_language": {"type": "string"},
    "target_language": {"type": "string"},
    "currency": {"type": "string"},
    "user_allergies": {
      "type": "array",
      "items": {"type": "string"},
      "description": "User-declared allergens (e.g., peanut, shellfish, gluten). May be empty."
    },
    "dishes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "ingredients"],
        "properties": {
          "dish_id": {"type": "string"},
          "name": {
            "type": "object",
            "properties": {
              "src": {"type": "string"},
              "translated": {"type": "string", "description": "Name translated to target_language"}
            }
          },
          "aliases": {"type": "array", "items": {"type": "string"}},
          "description": {
            "type": "object",
            "properties": {
              "src": {"type": "string"},
              "translated": {"type": "string", "description": "Description translated to target_language"}
            }
          },
          "price": {
            "type": "object",
            "properties": {
              "amount": {"type": "number"},
              "currency": {"type": "string"}
            }
          },
          "ingredients": {"type": "array", "items": {"type": "string"}},
          "flavor_profile": {"type": "array", "items": {"type": "string"}},
          "dietary": {
            "type": "object",
            "properties": {
              "contains_allergens": {"type": "array", "items": {"type": "string"}},
              "vegetarian": {"type": "boolean"},
              "vegan": {"type": "boolean"},
              "gluten_free": {"type": "string"},
              "halal": {"type": "string"}
            }
          },
          "kids_friendly": {"type": "string", "enum": ["yes", "no", "caution_spicy", "unknown"]},
          "spice_level": {"type": "integer", "minimum": 0, "maximum": 3},
          "allergy_alert": {
            "type": "string",
            "enum": ["safe", "contains", "may_contain", "unknown"],
            "description": "Model judgment relative to user_allergies."
          },
          "confidence": {"type": "number"},
          "evidence": {
            "type": "object",
            "properties": {
              "image_refs": {"type": "array", "items": {"type": "integer"}},
              "ocr_spans": {"type": "array", "items": {"type": "string"}}
            }
          }
        }
      }
    },
    "notes": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["menu_language", "target_language", "dishes"]
}`

// Tool declares a function the model may (here: must) call.
type Tool struct {
	Type        string          `json:"type"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// ToolChoice forces the model to respond with a specific function call
// instead of free text. This is a hard constraint passed to the provider.
type ToolChoice struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

func menuTool() Tool {
	return Tool{
		Type:        "function",
		Name:        toolName,
		Description: "Return structured menu information from images and/or OCR text. Translate output fields into the target language.",
		Parameters:  json.RawMessage(menuToolParameters),
	}
}
