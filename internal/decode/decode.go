// Package decode converts free-text model replies into parsed JSON values.
// It is a pure syntax boundary: entity-shape validation belongs to the
// normalize package, and nothing typed escapes from here.
package decode

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jonathan/resume-analyzer/internal/ollama"
)

// Gateway is the single-call primitive the decoder drives. *ollama.Client
// satisfies it; tests substitute fakes.
type Gateway interface {
	GenerateWithRetry(ctx context.Context, model, prompt string, opts ollama.Options, maxRetries int, initialDelay time.Duration) (string, error)
}

// jsonInstruction is appended to every structured prompt. Models ignore it
// often enough that Decode still has to dig JSON out of surrounding prose.
const jsonInstruction = "\n\nRespond with valid JSON only. No markdown, no explanation, no code blocks."

const (
	structuredTemperature = 0.1
	structuredNumPredict  = 4096
	plainTemperature      = 0.7
)

// Decoder issues generation calls and decodes structured replies
type Decoder struct {
	gw           Gateway
	maxRetries   int
	initialDelay time.Duration
}

// New creates a Decoder wrapping the given gateway. Retry parameters are
// forwarded to the gateway per call.
func New(gw Gateway, maxRetries int, initialDelay time.Duration) *Decoder {
	if maxRetries < 1 {
		maxRetries = ollama.DefaultRetryPolicy.MaxAttempts
	}
	if initialDelay <= 0 {
		initialDelay = ollama.DefaultRetryPolicy.InitialDelay
	}
	return &Decoder{gw: gw, maxRetries: maxRetries, initialDelay: initialDelay}
}

// Structured asks the model for a JSON reply at near-deterministic
// temperature with a bounded output cap and decodes it into out.
// Gateway errors pass through unchanged; a reply that arrived but cannot
// be parsed surfaces as *MalformedResponseError so callers can tell
// "the model answered but made no sense" from "the model did not answer".
func (d *Decoder) Structured(ctx context.Context, model, prompt string, out any) error {
	raw, err := d.gw.GenerateWithRetry(ctx, model, prompt+jsonInstruction, ollama.Options{
		Temperature: structuredTemperature,
		NumPredict:  structuredNumPredict,
		JSONFormat:  true,
	}, d.maxRetries, d.initialDelay)
	if err != nil {
		return err
	}
	return Decode(raw, out)
}

// Text issues a plain (non-JSON) generation call
func (d *Decoder) Text(ctx context.Context, model, prompt string) (string, error) {
	return d.gw.GenerateWithRetry(ctx, model, prompt, ollama.Options{
		Temperature: plainTemperature,
	}, d.maxRetries, d.initialDelay)
}

// Decode parses raw model output into out. On direct parse failure it
// strips markdown fences, then scans for the first balanced top-level
// JSON object or array before giving up. Decode is deterministic: the
// same input always yields the same result.
func Decode(raw string, out any) error {
	cleaned := CleanJSONBlock(raw)
	if json.Unmarshal([]byte(cleaned), out) == nil {
		return nil
	}

	if fragment, ok := firstBalancedJSON(cleaned); ok {
		if json.Unmarshal([]byte(fragment), out) == nil {
			return nil
		}
	}

	return &MalformedResponseError{Excerpt: excerpt(raw)}
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// firstBalancedJSON returns the first balanced top-level {...} or [...]
// substring. The scanner is string- and escape-aware so braces inside
// string values do not confuse the depth count.
func firstBalancedJSON(text string) (string, bool) {
	start := -1
	var open, close byte
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			start, open, close = i, '{', '}'
			break
		}
		if text[i] == '[' {
			start, open, close = i, '[', ']'
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

func excerpt(s string) string {
	s = strings.TrimSpace(s)
	const limit = 120
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
