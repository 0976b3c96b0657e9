package classifier

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pglaunch/profileengine/pkg/bucket"
)

// stripCodeFence removes a surrounding ```json ... ``` or ``` ... ``` fence
// from an LLM response, the common wrapping for "plain JSON" instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimPrefix(s, "JSON")
	s = strings.TrimSpace(s)
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// parseResponse tolerantly extracts a Result from the LLM's raw text. It
// uses gjson rather than encoding/json because the model's output is not a
// contract the process controls: extra prose around the JSON object is
// cut away and missing fields take their zero values. Text that is still
// not valid JSON once trimmed to its outermost braces (a stray trailing
// comma, for example) is rejected, and the caller falls back.
func parseResponse(raw string) (Result, bool) {
	raw = stripCodeFence(raw)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return Result{}, false
	}
	raw = raw[start : end+1]

	if !gjson.Valid(raw) {
		return Result{}, false
	}
	root := gjson.Parse(raw)

	res := Result{
		BucketUpdates:    make(map[bucket.ID]RawUpdate),
		UserIntent:       IntentProvideInfo,
		IntentConfidence: root.Get("intent_confidence").Float(),
		Ambiguous:        root.Get("ambiguous").Bool(),
		NeedsClarification: root.Get("needs_clarification").String(),
		Reasoning:        root.Get("reasoning").String(),
	}
	if intent := root.Get("user_intent").String(); intent != "" {
		res.UserIntent = Intent(intent)
	}

	root.Get("bucket_updates").ForEach(func(key, val gjson.Result) bool {
		id := bucket.ID(key.String())
		confidence := val.Get("confidence").Float()
		valueField := val.Get("value")

		var extracted any
		if valueField.IsArray() {
			var items []string
			for _, item := range valueField.Array() {
				items = append(items, item.String())
			}
			extracted = items
		} else {
			extracted = valueField.String()
		}
		res.BucketUpdates[id] = RawUpdate{Value: extracted, Confidence: confidence}
		return true
	})

	return res, true
}
