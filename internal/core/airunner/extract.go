// Copyright (c) 2026 Inkwell Platform. All rights reserved.

package airunner

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Diagnostics summarizes one stream's content for a failure_reason message
// when no usable reply could be extracted.
type Diagnostics struct {
	LineCount               int
	JSONLineCount           int
	ItemCompletedCount      int
	AgentMessageItemCount   int
	TurnCompletedCount      int
	FinalReplyCandidateCount int
}

// Summary renders the diagnostics the way an admin sees them inside a
// failure_reason string.
func (d Diagnostics) Summary() string {
	return fmt.Sprintf(
		"lines=%d, json_lines=%d, item_completed=%d, agent_message_items=%d, turn_completed=%d, final_reply_candidates=%d",
		d.LineCount, d.JSONLineCount, d.ItemCompletedCount, d.AgentMessageItemCount, d.TurnCompletedCount, d.FinalReplyCandidateCount,
	)
}

// Inspect walks raw line by line, classifying each as JSON or not and
// tallying the event shapes a streaming JSON runner is expected to emit.
// It never errors — every line either parses or is silently skipped.
func Inspect(raw string) Diagnostics {
	var d Diagnostics
	for _, line := range strings.Split(raw, "\n") {
		d.LineCount++
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		var value any
		if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
			continue
		}
		d.JSONLineCount++

		if obj, ok := value.(map[string]any); ok {
			if eventType, _ := obj["type"].(string); eventType == "item.completed" {
				d.ItemCompletedCount++
				if item, ok := obj["item"].(map[string]any); ok {
					if itemType, _ := item["type"].(string); itemType == "agent_message" {
						d.AgentMessageItemCount++
					}
				}
			} else if eventType == "turn.completed" {
				d.TurnCompletedCount++
			}
		}

		var candidates []string
		collectMarkdownCandidates(value, &candidates)
		for _, c := range candidates {
			if strings.TrimSpace(c) != "" {
				d.FinalReplyCandidateCount++
			}
		}
	}
	if d.LineCount == 0 {
		d.LineCount = 1
	}
	return d
}

// ExtractFinalReplyMarkdown runs the reply-extraction cascade over raw
// runner output: a single JSON value, a JSONL stream, smart-quote
// normalization, and escaped-JSON unwrapping, in that order, matching the
// grounded runner's stream contract. It returns the *last* non-empty
// candidate found, since a streaming runner may emit progress events before
// its final answer.
func ExtractFinalReplyMarkdown(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	if markdown, ok := extractFromJSONForms(trimmed); ok {
		return markdown, true
	}

	normalizedQuotes := normalizeSmartQuotes(trimmed)
	if normalizedQuotes != trimmed {
		if markdown, ok := extractFromJSONForms(normalizedQuotes); ok {
			return markdown, true
		}
	}

	if markdown, ok := extractFromEscapedText(normalizedQuotes); ok {
		return markdown, true
	}

	unescaped := strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(normalizedQuotes)
	if unescaped != normalizedQuotes {
		if markdown, ok := extractFromJSONForms(unescaped); ok {
			return markdown, true
		}
		if markdown, ok := extractFromEscapedText(unescaped); ok {
			return markdown, true
		}
	}

	return "", false
}

// extractFromJSONForms tries raw as one JSON document, then as JSONL (one
// JSON value per line), collecting every final_reply_markdown candidate
// reachable from any nesting depth and returning the last non-empty one.
func extractFromJSONForms(raw string) (string, bool) {
	var candidates []string

	var whole any
	if err := json.Unmarshal([]byte(raw), &whole); err == nil {
		collectMarkdownCandidates(whole, &candidates)
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(line), &value); err != nil {
			continue
		}
		collectMarkdownCandidates(value, &candidates)
	}

	for i := len(candidates) - 1; i >= 0; i-- {
		if strings.TrimSpace(candidates[i]) != "" {
			return strings.TrimSpace(candidates[i]), true
		}
	}
	return "", false
}

// collectMarkdownCandidates walks a decoded JSON value, collecting every
// string reachable under a "final_reply_markdown" key anywhere in the
// structure — including inside string values that are themselves JSON
// (the codex streaming-event shape: `item.text` holds an escaped JSON
// string carrying the real payload).
func collectMarkdownCandidates(value any, out *[]string) {
	switch v := value.(type) {
	case map[string]any:
		if raw, ok := v["final_reply_markdown"].(string); ok {
			if trimmed := strings.TrimSpace(raw); trimmed != "" {
				*out = append(*out, trimmed)
			}
		}
		for _, nested := range v {
			collectMarkdownCandidates(nested, out)
		}
	case []any:
		for _, item := range v {
			collectMarkdownCandidates(item, out)
		}
	case string:
		var nested any
		if err := json.Unmarshal([]byte(v), &nested); err == nil {
			collectMarkdownCandidates(nested, out)
			return
		}
		if markdown, ok := extractFromEscapedText(v); ok {
			*out = append(*out, markdown)
			return
		}
		unescaped := strings.NewReplacer(`\"`, `"`, `\\`, `\`).Replace(v)
		if unescaped != v {
			if markdown, ok := extractFromEscapedText(unescaped); ok {
				*out = append(*out, markdown)
			}
		}
	}
}

// extractFromEscapedText finds `"final_reply_markdown": "..."` by scanning
// for the literal key when raw isn't valid JSON on its own (e.g. a stream
// chunk embeds escaped JSON text alongside plain prose). Returns the last
// match.
func extractFromEscapedText(raw string) (string, bool) {
	const key = `"final_reply_markdown"`
	cursor := 0
	var latest string
	found := false

	for {
		idx := strings.Index(raw[cursor:], key)
		if idx < 0 {
			break
		}
		start := cursor + idx + len(key)
		tail := raw[start:]

		colonIdx := strings.IndexByte(tail, ':')
		if colonIdx < 0 {
			break
		}
		afterColon := strings.TrimLeft(tail[colonIdx+1:], " \t\r\n")

		value, consumed, ok := parseJSONStringLiteral(afterColon)
		if !ok {
			cursor = start
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			latest = trimmed
			found = true
		}
		cursor = start + colonIdx + 1 + (len(tail[colonIdx+1:]) - len(afterColon)) + consumed
	}
	return latest, found
}

// parseJSONStringLiteral parses one JSON string literal at the start of
// raw, returning its decoded value and the number of bytes consumed.
func parseJSONStringLiteral(raw string) (string, int, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", 0, false
	}
	escaped := false
	for i := 1; i < len(raw); i++ {
		b := raw[i]
		if escaped {
			escaped = false
			continue
		}
		if b == '\\' {
			escaped = true
			continue
		}
		if b == '"' {
			slice := raw[:i+1]
			var value string
			if err := json.Unmarshal([]byte(slice), &value); err != nil {
				return "", 0, false
			}
			return value, i + 1, true
		}
	}
	return "", 0, false
}

func normalizeSmartQuotes(raw string) string {
	replacer := strings.NewReplacer("“", `"`, "”", `"`, "‘", "'", "’", "'")
	return replacer.Replace(raw)
}

// LooksLikeStreamWithoutPayload reports whether raw contains a
// turn.completed or item.completed event marker (with or without a space
// after the colon). It does not look at whether any reply candidate was
// extracted.
func LooksLikeStreamWithoutPayload(raw string) bool {
	return strings.Contains(raw, `"type":"turn.completed"`) ||
		strings.Contains(raw, `"type":"item.completed"`) ||
		strings.Contains(raw, `"type": "turn.completed"`) ||
		strings.Contains(raw, `"type": "item.completed"`)
}
