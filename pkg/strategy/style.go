package strategy

import (
	"strings"

	"github.com/pglaunch/profileengine/pkg/convstate"
)

var technicalTerms = []string{
	"api", "sdk", "framework", "architecture", "algorithm",
	"optimization", "scalability", "infrastructure",
}

var formalIndicators = []string{
	"regards", "sincerely", "please find", "kindly",
	"would like to", "i would appreciate",
}

var uncertainPhrases = []string{
	"not sure", "i think", "maybe", "possibly",
	"what should i", "do i need to", "is this right",
}

// detectStyle classifies the user's communication style from every user
// message logged so far, mirroring
// ResponseStrategyEngine._detect_conversation_style's thresholds.
func detectStyle(store *convstate.Store) Style {
	var userMessages []string
	for _, m := range store.State.Messages {
		if m.Role == convstate.RoleUser {
			userMessages = append(userMessages, m.Content)
		}
	}
	if len(userMessages) == 0 {
		return StyleUncertain
	}

	totalLength := 0
	technicalCount := 0
	formalCount := 0
	uncertainCount := 0
	for _, msg := range userMessages {
		totalLength += len(msg)
		lower := strings.ToLower(msg)
		for _, term := range technicalTerms {
			if strings.Contains(lower, term) {
				technicalCount++
			}
		}
		for _, indicator := range formalIndicators {
			if strings.Contains(lower, indicator) {
				formalCount++
			}
		}
		for _, phrase := range uncertainPhrases {
			if strings.Contains(lower, phrase) {
				uncertainCount++
			}
		}
	}
	avgLength := float64(totalLength) / float64(len(userMessages))

	switch {
	case float64(uncertainCount) > float64(len(userMessages))*0.3:
		return StyleUncertain
	case avgLength > 100:
		return StyleVerbose
	case avgLength < 30:
		return StyleConcise
	case technicalCount > 2:
		return StyleTechnical
	case formalCount > 1:
		return StyleFormal
	default:
		return StyleCasual
	}
}
