package classifier

import (
	"fmt"
	"strings"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
)

// buildPrompt assembles the classification prompt: catalog summary, filled
// buckets, empty required buckets, recent history, and the new message.
func buildPrompt(message string, store *convstate.Store, contextWindow int) string {
	var b strings.Builder

	b.WriteString("You are a message classifier for a chatbot that collects information in buckets.\n\n")
	b.WriteString("AVAILABLE BUCKETS:\n")
	b.WriteString(bucketSummary(store.Catalog()))
	b.WriteString("\n\nCURRENT STATE:\nFilled buckets:\n")
	b.WriteString(filledSummary(store))
	b.WriteString("\n\nEmpty required buckets: ")
	b.WriteString(emptyRequiredSummary(store))
	b.WriteString("\n\nRECENT CONVERSATION:\n")
	b.WriteString(historySummary(store, contextWindow))
	b.WriteString("\n\nNEW MESSAGE TO CLASSIFY:\nUser: ")
	b.WriteString(message)
	b.WriteString("\n\n")
	b.WriteString(instructions)

	return b.String()
}

func bucketSummary(cat *bucket.Catalog) string {
	var lines []string
	for _, d := range cat.List() {
		examples := "No examples available"
		if len(d.ExampleInputs) > 0 {
			n := 2
			if len(d.ExampleInputs) < n {
				n = len(d.ExampleInputs)
			}
			examples = strings.Join(d.ExampleInputs[:n], " | ")
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (Examples: %s)", d.ID, d.Description, examples))
	}
	return strings.Join(lines, "\n")
}

func filledSummary(store *convstate.Store) string {
	var lines []string
	for _, id := range store.Filled() {
		vals, _ := store.GetValue(id)
		var rendered []string
		for _, v := range vals {
			rendered = append(rendered, v.String())
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", id, strings.Join(rendered, "; ")))
	}
	if len(lines) == 0 {
		return "None"
	}
	return strings.Join(lines, "\n")
}

func emptyRequiredSummary(store *convstate.Store) string {
	empty := store.EmptyRequired()
	if len(empty) == 0 {
		return "None"
	}
	ids := make([]string, len(empty))
	for i, id := range empty {
		ids[i] = string(id)
	}
	return strings.Join(ids, ", ")
}

func historySummary(store *convstate.Store, n int) string {
	recent := store.RecentMessages(n)
	var lines []string
	for _, m := range recent {
		role := "User"
		if m.Role == convstate.RoleAssistant {
			role = "Assistant"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", role, m.Content))
	}
	return strings.Join(lines, "\n")
}

const instructions = `TASK:
1. Identify which buckets this message provides information for
2. Extract the values with confidence scores (0.0-1.0)
3. Determine the user's intent
4. Check if the message is ambiguous or needs clarification

INTENTS:
- provide_info: User is providing new information
- acknowledgment: User is acknowledging without providing new info
- correction: User is correcting previously provided information
- completion: User explicitly wants to complete/submit
- review: User wants to see collected data
- question: User is asking a question
- hint_linkedin: User is hinting about LinkedIn

Return JSON in this format:
{
    "bucket_updates": {
        "bucket_id": {
            "value": "extracted value or array for multi-value buckets",
            "confidence": 0.95
        }
    },
    "user_intent": "provide_info",
    "intent_confidence": 0.9,
    "ambiguous": false,
    "needs_clarification": null,
    "reasoning": "Brief explanation"
}

IMPORTANT:
- Only extract information explicitly stated in the message
- Use high confidence (>0.8) only when extraction is clear
- When a user indicates they DON'T have something for an OPTIONAL field
  ("I don't have a website", "no website", "none", "n/a"), omit that
  bucket from bucket_updates entirely
- For multi-value buckets (social_media, expertise_keywords,
  success_stories, achievements, podcast_topics, speaking_experience,
  promotion_items), extract arrays; if the user says they have none,
  extract an empty array
- Extract social media information exactly as the user provides it,
  preserving platform names, handles, and URLs
- For years_experience extract only the numeric value ("4 years" -> "4")`
