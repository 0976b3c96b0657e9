package question

import (
	"strings"

	"github.com/pglaunch/profileengine/pkg/bucket"
	"github.com/pglaunch/profileengine/pkg/strategy"
)

const defaultStyleKey = strategy.Style("default")

// singleQuestions holds the per-(bucket, style) question templates, with a
// "default" fallback entry for every bucket. Not every style has a bespoke
// entry for every bucket — that unevenness mirrors the source templates
// exactly rather than padding every combination out.
var singleQuestions = map[bucket.ID]map[strategy.Style]string{
	bucket.FullName: {
		strategy.StyleFormal:    "May I have your full name, please?",
		strategy.StyleCasual:    "What's your name?",
		strategy.StyleUncertain: "Let's start with your name. What should I call you?",
		defaultStyleKey:         "What's your full name?",
	},
	bucket.Email: {
		strategy.StyleFormal:    "What email address should podcast hosts use to contact you?",
		strategy.StyleCasual:    "What's the best email to reach you at?",
		strategy.StyleTechnical: "Primary contact email?",
		defaultStyleKey:         "What's your email address?",
	},
	bucket.CurrentRole: {
		strategy.StyleFormal:  "What is your current professional role?",
		strategy.StyleCasual:  "What do you do for work?",
		strategy.StyleVerbose: "Could you tell me about your current role and what it involves?",
		defaultStyleKey:       "What's your current role?",
	},
	bucket.Company: {
		strategy.StyleFormal: "Which organization are you currently with?",
		strategy.StyleCasual: "Where do you work?",
		defaultStyleKey:      "What company do you work for?",
	},
	bucket.ProfessionalBio: {
		strategy.StyleFormal:    "Please provide a brief professional biography (2-3 sentences).",
		strategy.StyleCasual:    "Tell me a bit about yourself professionally - just 2-3 sentences.",
		strategy.StyleUncertain: "Could you share a short bio about what you do? Just a few sentences about your professional background.",
		defaultStyleKey:         "Please share a brief professional bio (2-3 sentences).",
	},
	bucket.ExpertiseKeywords: {
		strategy.StyleTechnical: "List your core competencies and areas of expertise (one per line).",
		strategy.StyleCasual:    "What topics are you an expert in? List a few, one per line!",
		strategy.StyleUncertain: "What subjects could you speak about on a podcast? List 3-5 topics you know well, one per line.",
		defaultStyleKey:         "What are your main areas of expertise? (3-5 topics, one per line)",
	},
	bucket.PodcastTopics: {
		strategy.StyleFormal: "Which topics would you be interested in discussing on podcasts? Please list them, one per line.",
		strategy.StyleCasual: "What would you want to talk about on podcasts? List a few topics!",
		defaultStyleKey:      "What topics would you like to discuss on podcasts? (list 2-5, one per line)",
	},
	bucket.SuccessStories: {
		strategy.StyleFormal:    "Please share 1-2 significant professional achievements or success stories (one per line).",
		strategy.StyleCasual:    "What are you most proud of in your career? Share a few wins!",
		strategy.StyleTechnical: "Key achievements or case studies? List them separately.",
		defaultStyleKey:         "Can you share 1-2 success stories or achievements? (one per line)",
	},
	bucket.UniquePerspective: {
		strategy.StyleCasual: "What unique insight or perspective do you bring to your field?",
		strategy.StyleFormal: "What distinguishes your perspective in your area of expertise?",
		defaultStyleKey:      "What unique perspective do you bring to your field?",
	},
	bucket.Phone: {
		strategy.StyleFormal: "Would you be comfortable sharing a phone number for urgent podcast inquiries?",
		strategy.StyleCasual: "Do you have a phone number for podcast hosts who need to reach you quickly?",
		defaultStyleKey:      "What's a good phone number for podcast-related calls? (optional)",
	},
	bucket.YearsExperience: {
		strategy.StyleFormal: "How many years of professional experience do you have in your field?",
		strategy.StyleCasual: "How long have you been doing what you do?",
		defaultStyleKey:      "How many years of experience do you have?",
	},
	bucket.SpeakingExperience: {
		strategy.StyleFormal:  "Have you been a guest on podcasts or done public speaking before? Please list any appearances.",
		strategy.StyleCasual:  "Have you been on podcasts or done any speaking gigs before? List any you remember!",
		strategy.StyleVerbose: "Tell me about your experience with podcasts, public speaking, or media appearances. List each one on a separate line.",
		defaultStyleKey:       "Do you have any previous podcast or speaking experience? (list any, one per line)",
	},
	bucket.Achievements: {
		strategy.StyleFormal: "What are some specific achievements or metrics you're proud of? List them one per line.",
		strategy.StyleCasual: "What specific wins or results have you achieved? Share a few!",
		defaultStyleKey:      "Can you share some specific achievements with numbers or results? (one per line)",
	},
	bucket.Website: {
		strategy.StyleFormal: "Do you have a personal or professional website you'd like to share?",
		strategy.StyleCasual: "Got a website where people can learn more about you?",
		defaultStyleKey:      "Do you have a website? (optional)",
	},
	bucket.SchedulingPreference: {
		strategy.StyleFormal: "What's your preferred method for scheduling podcast interviews?",
		strategy.StyleCasual: "How do you prefer to schedule podcast recordings?",
		defaultStyleKey:      "What's the best way for hosts to schedule time with you?",
	},
	bucket.PromotionItems: {
		strategy.StyleFormal: "Do you have any books, courses, or services you'd like to promote? List each one.",
		strategy.StyleCasual: "Anything you're promoting right now - book, course, product? List them out!",
		defaultStyleKey:      "What would you like to promote on podcasts? (list items, one per line)",
	},
	bucket.SocialMedia: {
		strategy.StyleFormal:  "Which social media platforms are you active on? You can share handles, URLs, or usernames in any format.",
		strategy.StyleCasual:  "Where can people find you on social media? Drop your profiles in any format you like!",
		strategy.StyleVerbose: "Let's make it easy for podcast listeners to connect with you! Share your social media profiles - Instagram, Twitter/X, LinkedIn, TikTok, or any others. You can provide URLs, handles with @, or just platform and username.",
		defaultStyleKey:       "What are your social media profiles? (share in any format - URLs, @handles, or platform: username)",
	},
	bucket.IdealPodcast: {
		strategy.StyleFormal:  "Could you describe the type of podcasts you'd be most interested in appearing on? Consider the audience, topics, and format.",
		strategy.StyleCasual:  "What kind of podcasts are you looking to be on? Think about the vibe, audience, topics - paint me a picture!",
		strategy.StyleVerbose: "Help me understand your ideal podcast appearance. What type of shows are you hoping to get on? Think about the audience demographics, the topics they cover, the interview style, and what would make a podcast a perfect fit for you.",
		strategy.StyleConcise: "Describe your ideal podcast appearance.",
		defaultStyleKey:       "What type of podcasts would be ideal for you? Describe the audience, topics, and format you're looking for.",
	},
	bucket.LinkedInURL: {
		strategy.StyleFormal: "Would you mind sharing your LinkedIn profile so we can learn more about your background?",
		strategy.StyleCasual: "Got a LinkedIn profile you can share?",
		defaultStyleKey:      "What's your LinkedIn profile URL? (optional, but it helps us fill in details automatically)",
	},
	bucket.TargetAudience: {
		strategy.StyleFormal: "Who would you consider the ideal audience for your insights?",
		strategy.StyleCasual: "Who would get the most out of hearing from you?",
		defaultStyleKey:      "Who is your target audience?",
	},
	bucket.KeyMessage: {
		strategy.StyleFormal: "What central message or transformation would you like listeners to take away?",
		strategy.StyleCasual: "What's the one big takeaway you want listeners to walk away with?",
		defaultStyleKey:      "What's the key message or transformation you want listeners to take away?",
	},
}

type multiTemplateEntry struct {
	buckets   []bucket.ID
	templates map[strategy.Style]string
}

// multiQuestions holds fixed combined-question templates for bucket
// groups that read naturally as one question. A template applies to any
// set of target buckets that lies entirely within its group, in any order
// (see findMultiTemplate).
var multiQuestions = []multiTemplateEntry{
	{
		buckets: []bucket.ID{bucket.Email, bucket.Phone, bucket.LinkedInURL},
		templates: map[strategy.Style]string{
			strategy.StyleFormal:  "How would you prefer podcast hosts contact you? Please share your email and any other contact methods (phone, LinkedIn) you're comfortable with.",
			strategy.StyleCasual:  "What's the best way for podcast hosts to reach you? Email, phone, LinkedIn - whatever works for you!",
			strategy.StyleConcise: "Contact info? (email required, phone/LinkedIn optional)",
			defaultStyleKey:       "How can podcast hosts best reach you? Please share your email and any other preferred contact methods.",
		},
	},
	{
		buckets: []bucket.ID{bucket.CurrentRole, bucket.Company},
		templates: map[strategy.Style]string{
			strategy.StyleFormal:  "Could you tell me about your current position and organization?",
			strategy.StyleCasual:  "What do you do and where do you work?",
			strategy.StyleVerbose: "I'd love to hear about your current role - what you do and which company you're with.",
			defaultStyleKey:       "What's your current role and company?",
		},
	},
	{
		buckets: []bucket.ID{bucket.ExpertiseKeywords, bucket.PodcastTopics},
		templates: map[strategy.Style]string{
			strategy.StyleFormal: "What are your areas of expertise and which topics would you like to discuss on podcasts? Please list them separately.",
			strategy.StyleCasual: "What are you an expert in and what would you want to talk about on shows? List a few of each!",
			defaultStyleKey:      "What are your areas of expertise and what topics interest you for podcast discussions? (list multiple)",
		},
	},
	{
		buckets: []bucket.ID{bucket.SuccessStories, bucket.Achievements},
		templates: map[strategy.Style]string{
			strategy.StyleFormal: "Could you share some of your professional achievements or success stories? List each one on a new line.",
			strategy.StyleCasual: "What accomplishments are you most proud of? Share a few!",
			defaultStyleKey:      "What are some of your key achievements or success stories? (one per line)",
		},
	},
}

var yearsMentionedTemplates = []string{
	"You mentioned {years} years of experience - what's been the highlight?",
	"With {years} years in the field, what key insights have you gained?",
	"{years} years is impressive! What's changed most in your industry?",
}

var roleMentionedTemplates = []string{
	"As a {role}, what unique perspectives do you bring to podcasts?",
	"What challenges do {role}s face that listeners might find interesting?",
	"What's the most misunderstood aspect of being a {role}?",
}

var acknowledgeTransitions = []string{"Great!", "Perfect!", "Excellent!", "Got it!", "Thanks!"}
var progressTransitions = []string{
	"We're making good progress.",
	"This is really helpful.",
	"You're providing great information.",
	"This is exactly what podcast hosts need to know.",
}
var continueTransitions = []string{"Now,", "Next,", "Also,", "One more thing -", "Additionally,"}

func lookupTemplate(templates map[strategy.Style]string, style strategy.Style) (string, bool) {
	if t, ok := templates[style]; ok {
		return t, true
	}
	if t, ok := templates[defaultStyleKey]; ok {
		return t, true
	}
	return "", false
}

// findMultiTemplate returns the first template set that ids is a subset
// of, mirroring the original's "all(bid in template_buckets for bid in
// bucket_ids)" check — ids need not cover the whole template group.
func findMultiTemplate(ids []bucket.ID) (multiTemplateEntry, bool) {
	for _, entry := range multiQuestions {
		if isSubset(ids, entry.buckets) {
			return entry, true
		}
	}
	return multiTemplateEntry{}, false
}

func isSubset(ids, group []bucket.ID) bool {
	groupSet := make(map[bucket.ID]bool, len(group))
	for _, id := range group {
		groupSet[id] = true
	}
	for _, id := range ids {
		if !groupSet[id] {
			return false
		}
	}
	return true
}

func lowerName(def bucket.Definition) string {
	return strings.ToLower(def.Name)
}
