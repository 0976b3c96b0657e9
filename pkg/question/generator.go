package question

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/convstate"
	"github.com/pglaunch/profileengine/pkg/strategy"
)

// PersonalizationMinMessages and PersonalizationChance mirror
// personalize_with_name's "only after some rapport" gate and its 30%
// coin flip.
const (
	PersonalizationMinMessages = 6
	PersonalizationChance      = 0.3
)

// FollowUpYearsThreshold is the years_experience value that must be
// exceeded before a years-mentioned follow-up is asked, per
// _check_follow_up_opportunity.
const FollowUpYearsThreshold = 5

// Generator produces question text from a strategy.Context.
type Generator struct {
	catalog *bucket.Catalog
	rand    *rand.Rand
}

// New builds a Generator against catalog. r may be nil to use the
// top-level math/rand source.
func New(catalog *bucket.Catalog, r *rand.Rand) *Generator {
	return &Generator{catalog: catalog, rand: r}
}

func (g *Generator) intn(n int) int {
	if g.rand != nil {
		return g.rand.Intn(n)
	}
	return rand.Intn(n)
}

func (g *Generator) float64() float64 {
	if g.rand != nil {
		return g.rand.Float64()
	}
	return rand.Float64()
}

func (g *Generator) choice(options []string) string {
	return options[g.intn(len(options))]
}

// Generate produces the question for one turn's strategy.Context.
func (g *Generator) Generate(ctx strategy.Context, store *convstate.Store) Generated {
	if len(ctx.PriorityBuckets) == 0 {
		return g.generateCompletionQuestion(ctx.Style)
	}

	if ctx.GroupQuestions && len(ctx.PriorityBuckets) > 1 {
		return g.generateMultiBucketQuestion(ctx.PriorityBuckets, ctx.Style)
	}

	target := ctx.PriorityBuckets[0]
	if followUp, ok := g.checkFollowUpOpportunity(store, target); ok {
		return followUp
	}

	return g.generateSingleBucketQuestion(target, ctx.Style, ctx.OfferExamples)
}

func (g *Generator) generateSingleBucketQuestion(id bucket.ID, style strategy.Style, includeExamples bool) Generated {
	def, _ := g.catalog.Get(id)
	templates, hasTemplates := singleQuestions[id]

	var text string
	if hasTemplates {
		if t, ok := lookupTemplate(templates, style); ok {
			text = t
		}
	}
	if text == "" {
		text = fmt.Sprintf("Could you provide your %s?", strings.ToLower(def.Name))
	}

	if includeExamples && len(def.ExampleInputs) > 0 {
		examples := def.ExampleInputs
		if len(examples) > 2 {
			examples = examples[:2]
		}
		if len(examples) == 1 {
			text += fmt.Sprintf(" (for example: %s)", examples[0])
		} else {
			text += fmt.Sprintf(" (for example: %s or %s)", examples[0], examples[1])
		}
	}

	return Generated{
		Text:             text,
		TargetBuckets:    []bucket.ID{id},
		Kind:             KindSingle,
		IncludesExamples: includeExamples,
	}
}

func (g *Generator) generateMultiBucketQuestion(ids []bucket.ID, style strategy.Style) Generated {
	if entry, ok := findMultiTemplate(ids); ok {
		if text, ok := lookupTemplate(entry.templates, style); ok && text != "" {
			return Generated{Text: text, TargetBuckets: ids, Kind: KindMulti}
		}
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		def, _ := g.catalog.Get(id)
		names[i] = lowerName(def)
	}

	var text string
	switch {
	case len(names) == 2:
		text = fmt.Sprintf("Could you share your %s and %s?", names[0], names[1])
	default:
		text = fmt.Sprintf("Could you share your %s, and %s?", strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
	}

	return Generated{Text: text, TargetBuckets: ids, Kind: KindMulti}
}

// checkFollowUpOpportunity offers a contextual follow-up question instead
// of a generic prompt when the conversation already gave us something to
// reference: a substantial years_experience figure for
// achievements/success_stories, or a named current_role for
// unique_perspective/podcast_topics.
func (g *Generator) checkFollowUpOpportunity(store *convstate.Store, target bucket.ID) (Generated, bool) {
	switch target {
	case bucket.Achievements, bucket.SuccessStories:
		vals, ok := store.GetValue(bucket.YearsExperience)
		if !ok {
			return Generated{}, false
		}
		years, err := strconv.Atoi(vals[0].String())
		if err != nil || years <= FollowUpYearsThreshold {
			return Generated{}, false
		}
		text := strings.ReplaceAll(g.choice(yearsMentionedTemplates), "{years}", strconv.Itoa(years))
		return Generated{Text: text, TargetBuckets: []bucket.ID{target}, Kind: KindFollowUp, Personalized: true}, true

	case bucket.UniquePerspective, bucket.PodcastTopics:
		vals, ok := store.GetValue(bucket.CurrentRole)
		if !ok || len(vals[0].String()) <= 3 {
			return Generated{}, false
		}
		text := strings.ReplaceAll(g.choice(roleMentionedTemplates), "{role}", vals[0].String())
		return Generated{Text: text, TargetBuckets: []bucket.ID{target}, Kind: KindFollowUp, Personalized: true}, true
	}
	return Generated{}, false
}

func (g *Generator) generateCompletionQuestion(style strategy.Style) Generated {
	var text string
	switch style {
	case strategy.StyleFormal:
		text = "Is there anything else you would like to add to your profile?"
	case strategy.StyleCasual:
		text = "Anything else you'd like to share?"
	default:
		text = "Would you like to add anything else?"
	}
	return Generated{Text: text, Kind: KindCompletion}
}

// AddTransition layers acknowledgment, progress, and continuation phrasing
// in front of q's text, in that order, joined by single spaces.
func (g *Generator) AddTransition(q Generated, acknowledgePrevious, showProgress bool) string {
	var parts []string
	if acknowledgePrevious {
		parts = append(parts, g.choice(acknowledgeTransitions))
	}
	if showProgress {
		parts = append(parts, g.choice(progressTransitions))
	}
	if len(parts) > 0 {
		parts = append(parts, strings.ToLower(g.choice(continueTransitions)))
	}
	parts = append(parts, q.Text)
	return strings.Join(parts, " ")
}

// PersonalizeWithName prepends the user's first name to text if their full
// name is already on file, the conversation has built up some rapport (more
// than PersonalizationMinMessages messages), and a 30% coin flip lands —
// matching personalize_with_name's "don't do this every time" texture.
func (g *Generator) PersonalizeWithName(text string, store *convstate.Store) string {
	vals, ok := store.GetValue(bucket.FullName)
	if !ok || len(store.State.Messages) <= PersonalizationMinMessages {
		return text
	}
	fields := strings.Fields(vals[0].String())
	if len(fields) == 0 {
		return text
	}
	if g.float64() >= PersonalizationChance {
		return text
	}
	return fmt.Sprintf("%s, %s", fields[0], strings.ToLower(text[:1])+text[1:])
}
