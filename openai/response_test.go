package openai

import (
	"encoding/json"
	"testing"

	"menu-analyze-service/models"
)

func TestExtractToolArgs(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		want     bool
		contains string
	}{
		{
			name: "top-level function call with string arguments",
			body: `{
				"id": "resp_123",
				"output": [
					{"type": "function_call", "name": "return_menu", "arguments": "{\"menu_language\":\"it\",\"target_language\":\"en\",\"dishes\":[]}"}
				]
			}`,
			want:     true,
			contains: "menu_language",
		},
		{
			name: "nested content tool call with tool_name",
			body: `{
				"id": "resp_456",
				"output": [
					{"type": "message", "content": [
						{"type": "output_text", "text": "thinking..."},
						{"type": "tool_call", "tool_name": "return_menu", "arguments": "{\"menu_language\":\"fr\",\"target_language\":\"en\",\"dishes\":[]}"}
					]}
				]
			}`,
			want:     true,
			contains: "fr",
		},
		{
			name: "nested content function call with name",
			body: `{
				"output": [
					{"type": "message", "content": [
						{"type": "function_call", "name": "return_menu", "arguments": "{\"dishes\":[]}"}
					]}
				]
			}`,
			want: true,
		},
		{
			name: "wrong tool name is skipped",
			body: `{
				"output": [
					{"type": "function_call", "name": "return_receipt", "arguments": "{}"}
				]
			}`,
			want: false,
		},
		{
			name: "plain text response has no tool call",
			body: `{
				"output": [
					{"type": "message", "content": [{"type": "output_text", "text": "Sorry, I cannot help."}]}
				]
			}`,
			want: false,
		},
		{
			name: "empty output",
			body: `{"output": []}`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp Response
			if err := json.Unmarshal([]byte(tt.body), &resp); err != nil {
				t.Fatalf("fixture did not parse: %v", err)
			}

			args, ok := extractToolArgs(&resp)
			if ok != tt.want {
				t.Fatalf("extractToolArgs() ok = %v, want %v", ok, tt.want)
			}
			if !tt.want {
				return
			}

			var result models.MenuAnalysis
			if err := decodeArguments(args, &result); err != nil {
				t.Fatalf("decodeArguments() unexpected error: %v", err)
			}
			if tt.contains != "" {
				raw, _ := json.Marshal(result)
				if !json.Valid(raw) {
					t.Fatalf("decoded result did not remarshal")
				}
			}
		})
	}
}

func TestDecodeArguments(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		lang    string
	}{
		{
			name: "arguments as object",
			raw:  `{"menu_language":"es","target_language":"en","dishes":[]}`,
			lang: "es",
		},
		{
			name: "arguments as JSON-encoded string",
			raw:  `"{\"menu_language\":\"zh\",\"target_language\":\"en\",\"dishes\":[]}"`,
			lang: "zh",
		},
		{
			name:    "empty arguments",
			raw:     ``,
			wantErr: true,
		},
		{
			name:    "string that is not JSON",
			raw:     `"not json at all"`,
			wantErr: true,
		},
		{
			name:    "malformed object",
			raw:     `{"menu_language":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result models.MenuAnalysis
			err := decodeArguments(json.RawMessage(tt.raw), &result)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("decodeArguments() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeArguments() unexpected error: %v", err)
			}
			if result.MenuLanguage != tt.lang {
				t.Errorf("menu_language = %q, want %q", result.MenuLanguage, tt.lang)
			}
		})
	}
}

func TestNoToolCallErrorPreservesRaw(t *testing.T) {
	raw := `{"output":[],"note":"nothing useful"}`
	err := &NoToolCallError{Raw: json.RawMessage(raw)}

	if err.Error() == "" {
		t.Fatal("error string should not be empty")
	}
	if string(err.Raw) != raw {
		t.Errorf("Raw = %q, want the full original body", string(err.Raw))
	}
}
