package bucket

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	urlPattern      = regexp.MustCompile(`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)$`)
	yearsPrefixRe   = regexp.MustCompile(`^(\d+)\s*(years?|yrs?)?$`)
)

// Story is a structured success story or achievement with subject/result
// fields, the richer of the two forms success_stories/achievements accept.
type Story struct {
	Subject   string   `json:"subject,omitempty"`
	Challenge string   `json:"challenge,omitempty"`
	Action    string   `json:"action,omitempty"`
	Result    string   `json:"result,omitempty"`
	Metrics   []string `json:"metrics,omitempty"`
}

// Achievement is a structured achievement entry with a description.
type Achievement struct {
	Description string   `json:"description,omitempty"`
	Metrics     []string `json:"metrics,omitempty"`
}

func validateEmail(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return emailPattern.MatchString(strings.TrimSpace(s))
}

func validateURL(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return urlPattern.MatchString(strings.TrimSpace(s))
}

func validateLinkedInURL(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(s), "linkedin.com/in/")
}

func validateNonEmptyString(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return len(strings.TrimSpace(s)) > 0
}

func validateStringList(value any) bool {
	list, ok := value.([]string)
	if !ok {
		return false
	}
	return len(list) > 0
}

func validateStringListOptional(value any) bool {
	_, ok := value.([]string)
	return ok
}

func validateStory(value any) bool {
	switch v := value.(type) {
	case string:
		return len(strings.TrimSpace(v)) > 0
	case Story:
		return strings.TrimSpace(v.Subject) != "" && strings.TrimSpace(v.Result) != ""
	case []any:
		if len(v) == 0 {
			return false
		}
		for _, item := range v {
			if !validateStory(item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func validateAchievement(value any) bool {
	switch v := value.(type) {
	case string:
		return len(strings.TrimSpace(v)) > 0
	case Achievement:
		return strings.TrimSpace(v.Description) != ""
	case []any:
		if len(v) == 0 {
			return false
		}
		for _, item := range v {
			if !validateAchievement(item) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func validateYearsExperience(value any) bool {
	s := strings.ToLower(strings.TrimSpace(toString(value)))
	if s == "" {
		return false
	}
	if _, err := strconv.Atoi(s); err == nil {
		return true
	}
	return yearsPrefixRe.MatchString(s)
}

func validateSocialMediaList(value any) bool {
	switch v := value.(type) {
	case []string:
		return true
	case string:
		return true
	case []SocialProfile:
		_ = v
		return true
	default:
		return false
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
