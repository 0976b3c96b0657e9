package response

import (
	"math/rand"
	"strings"

	"github.com/pglaunch/profileengine/pkg/strategy"
)

// templateSet holds a template id's style-specific variants plus a
// default fallback, mirroring ResponseTemplate's templates/default_templates
// split in response_templates.py. Variant lists deliberately differ in
// length and style coverage from one template id to the next - that
// unevenness is ported as-is rather than padded out.
type templateSet struct {
	byStyle map[strategy.Style][]string
	fallback []string
}

var templateTable = map[string]templateSet{
	"warm_welcome": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal: {
				"Welcome! I'm here to help you create a compelling profile for podcast appearances. Let's begin with your name.",
				"Good to meet you! I'll be gathering information to help podcast hosts learn about you. May we start with your name?",
			},
			strategy.StyleCasual: {
				"Hey there! I'll help you create an awesome podcast guest profile. Let's start with your name!",
				"Hi! Ready to get you on some great podcasts? First up - what's your name?",
			},
			strategy.StyleUncertain: {
				"Hello! I'm here to help you create a profile for podcast opportunities. Don't worry, I'll guide you through everything. Let's start simple - what's your name?",
			},
		},
		fallback: []string{"Welcome! I'll help you create your podcast guest profile. Let's start with your name."},
	},
	"acknowledge_single": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal:    {"Thank you, I've recorded that.", "Excellent, I have that information."},
			strategy.StyleCasual:    {"Got it!", "Perfect!", "Awesome!"},
			strategy.StyleTechnical: {"Noted.", "Recorded.", "Confirmed."},
		},
		fallback: []string{"Great, I've got that.", "Thanks, I've saved that information."},
	},
	"acknowledge_multiple": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleVerbose: {
				"Excellent! I've captured all of that information. You've provided {items}.",
				"Wonderful! I've recorded {items}. This is very helpful.",
			},
			strategy.StyleConcise: {"Got {items}.", "Saved {items}."},
		},
		fallback: []string{"Perfect! I've saved {items}.", "Great! I've recorded {items}."},
	},
	"acknowledge_correction": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal: {
				"I've updated that information. Thank you for the correction.",
				"I've made that correction. The information has been updated.",
			},
			strategy.StyleCasual: {
				"No problem! I've fixed that.",
				"Got it - I've updated that for you.",
				"All good! I've made that change.",
			},
		},
		fallback: []string{"Thanks for the correction - I've updated that.", "I've corrected that information."},
	},
	"progress_update": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal: {
				"We're making excellent progress. You've provided {percent}% of the required information.",
				"Thank you for your detailed responses. We have {percent}% of what podcast hosts need.",
			},
			strategy.StyleCasual: {"We're {percent}% done - you're doing great!", "Nice! We're about {percent}% complete."},
		},
		fallback: []string{"Great progress! We're about {percent}% complete.", "We're making good progress - {percent}% done."},
	},
	"need_clarification": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal: {"I want to ensure I understand correctly. {clarification}", "Could you please clarify? {clarification}"},
			strategy.StyleCasual: {"Just to make sure I get this right - {clarification}", "Quick question - {clarification}"},
		},
		fallback: []string{"I want to make sure I understand - {clarification}", "Could you clarify - {clarification}"},
	},
	"completion_blocked": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal: {
				"I appreciate your eagerness to complete. However, I still need: {missing}. Would you mind providing this information?",
				"Before we can submit, I need a few more details: {missing}. Could you help me with these?",
			},
			strategy.StyleCasual: {
				"Almost there! I just need: {missing}. Can you help me out with these?",
				"We're so close! Just need: {missing}. Want to knock these out quickly?",
			},
		},
		fallback: []string{
			"I'd love to submit your profile, but I still need: {missing}. Can you provide these?",
			"We're nearly done! I just need: {missing} to complete your profile.",
		},
	},
	"completion_ready": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal: {
				"Excellent! I have all the required information. Here's a summary:\n\n{summary}\n\nIs everything correct?",
				"Thank you! Your profile is complete. Please review:\n\n{summary}\n\nShall I submit this?",
			},
			strategy.StyleCasual: {
				"Awesome! We've got everything. Here's what I have:\n\n{summary}\n\nLook good?",
				"All done! Quick review:\n\n{summary}\n\nReady to submit?",
			},
		},
		fallback: []string{
			"Great! I have all your information. Here's a summary:\n\n{summary}\n\nIs this correct?",
			"Perfect! Your profile is ready. Please review:\n\n{summary}\n\nShall I submit?",
		},
	},
	"error_recovery": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal: {"I apologize, I didn't quite understand that. Could you please rephrase?", "I'm having trouble processing that. Would you mind saying it differently?"},
			strategy.StyleCasual: {"Hmm, I didn't catch that. Can you try saying it another way?", "Sorry, I'm a bit confused. Could you rephrase that?"},
		},
		fallback: []string{"I didn't quite understand that. Could you rephrase?", "Sorry, I missed that. Can you say it differently?"},
	},
	"conversation_rescue": {
		byStyle: map[strategy.Style][]string{
			strategy.StyleFormal: {
				"I sense we may be having some difficulty. Would you prefer if I guide you through this step by step?",
				"Let me help make this easier. I can ask specific questions one at a time. Would that be better?",
			},
			strategy.StyleCasual: {
				"Hey, looks like we're getting a bit stuck. Want me to just ask you simple questions one by one?",
				"No worries! Let's take this step by step. I'll keep it simple. Sound good?",
			},
		},
		fallback: []string{
			"I notice we're having some trouble. Let me guide you through this step by step, okay?",
			"Let's simplify this. I'll ask you one thing at a time. How does that sound?",
		},
	},
}

// renderer picks template variants and formats {placeholder} substitutions.
// Like question.Generator, it accepts an optional *rand.Rand so tests can
// assert deterministic output.
type renderer struct {
	rand *rand.Rand
}

func (r *renderer) intn(n int) int {
	if r.rand != nil {
		return r.rand.Intn(n)
	}
	return rand.Intn(n)
}

// render looks up templateID, chooses the style-matched variant list (or
// the default list if style has no entry), picks one at random, and
// substitutes every {key} in kv.
func (r *renderer) render(templateID string, style strategy.Style, kv map[string]string) string {
	set, ok := templateTable[templateID]
	if !ok {
		return "I'm not sure how to respond to that."
	}
	variants := set.fallback
	if styled, ok := set.byStyle[style]; ok && len(styled) > 0 {
		variants = styled
	}
	if len(variants) == 0 {
		return ""
	}
	text := variants[r.intn(len(variants))]
	for key, value := range kv {
		text = strings.ReplaceAll(text, "{"+key+"}", value)
	}
	return text
}

// formatBucketList renders a list of bucket display names the way a
// person would say them out loud, varying the join word by style.
func formatBucketList(names []string, style strategy.Style) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	if style == strategy.StyleConcise {
		return strings.Join(names, ", ")
	}
	head := strings.Join(names[:len(names)-1], ", ")
	if style == strategy.StyleFormal {
		return head + ", and " + names[len(names)-1]
	}
	return head + " and " + names[len(names)-1]
}
