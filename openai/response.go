package openai

import (
	"encoding/json"
	"fmt"
)

// The provider is known to deliver the forced function call in two shapes:
// as a top-level output item of type "function_call", or nested inside an
// output item's content list as a "tool_call"/"function_call" entry. Each
// shape gets its own type and extraction function so the parsing stays
// exhaustive and testable against fixtures.

// Response is the decoded body of a /v1/responses call. Fields we do not
// consume are left out on purpose; the raw body is kept separately for
// diagnostics.
type Response struct {
	ID     string       `json:"id"`
	Output []OutputItem `json:"output"`
}

// OutputItem is one entry of the response output list.
type OutputItem struct {
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	Content   []ContentItem   `json:"content"`
}

// ContentItem is one entry of an output item's nested content list. Some
// provider variants label the invoked function "tool_name" instead of "name".
type ContentItem struct {
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	ToolName  string          `json:"tool_name"`
	Arguments json.RawMessage `json:"arguments"`
}

// NoToolCallError reports a response that contained no return_menu
// invocation. Raw preserves the full provider body for diagnostics; the
// gateway never fabricates a result in this case.
type NoToolCallError struct {
	Raw json.RawMessage
}

func (e *NoToolCallError) Error() string {
	return "model response contained no " + toolName + " call"
}

// argsFromOutputItem extracts return_menu arguments from a top-level
// function_call output item.
func argsFromOutputItem(item OutputItem) (json.RawMessage, bool) {
	if item.Type != "function_call" || item.Name != toolName {
		return nil, false
	}
	return item.Arguments, true
}

// argsFromContentItem extracts return_menu arguments from a nested content
// entry.
func argsFromContentItem(item ContentItem) (json.RawMessage, bool) {
	if item.Type != "tool_call" && item.Type != "function_call" {
		return nil, false
	}
	name := item.ToolName
	if name == "" {
		name = item.Name
	}
	if name != toolName {
		return nil, false
	}
	return item.Arguments, true
}

// extractToolArgs scans the response output for the first return_menu
// invocation in either known shape and returns its raw arguments.
func extractToolArgs(resp *Response) (json.RawMessage, bool) {
	for _, item := range resp.Output {
		if args, ok := argsFromOutputItem(item); ok {
			return args, true
		}
		for _, c := range item.Content {
			if args, ok := argsFromContentItem(c); ok {
				return args, true
			}
		}
	}
	return nil, false
}

// decodeArguments unmarshals tool arguments into dst. Arguments usually
// arrive as a JSON-encoded string but some variants deliver them as a plain
// object; both are accepted.
func decodeArguments(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return fmt.Errorf("empty tool arguments")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("failed to decode argument string: %w", err)
		}
		raw = json.RawMessage(s)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to parse tool arguments: %w", err)
	}
	return nil
}
