package fileutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoJSONObject is returned when a model reply holds no {...} span at all.
var ErrNoJSONObject = errors.New("no JSON object in model output")

// DecodeModelJSON unmarshals the JSON object in a model reply. Replies wrapped in a markdown
// fence or surrounded by chatter are accepted: the outermost {...} span is decoded.
func DecodeModelJSON(outputText string, v any) error {
	s := stripFence(strings.TrimSpace(outputText))
	if s == "" {
		return io.ErrUnexpectedEOF
	}
	if json.Valid([]byte(s)) {
		return json.Unmarshal([]byte(s), v)
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return fmt.Errorf("DecodeModelJSON: %w (%d bytes)", ErrNoJSONObject, len(s))
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), v); err != nil {
		return fmt.Errorf("DecodeModelJSON: extracted object: %w", err)
	}
	return nil
}

// stripFence removes one surrounding ``` or ```json fence.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	body := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[") {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body)
}
