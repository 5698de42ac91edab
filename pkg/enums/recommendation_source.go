package enums

import "fmt"

// RecommendationSource records which engine produced a recommendation.
type RecommendationSource string

const (
	RecommendationSourceRules   RecommendationSource = "rules"
	RecommendationSourceAdvisor RecommendationSource = "advisor"
)

var validRecommendationSources = []RecommendationSource{
	RecommendationSourceRules,
	RecommendationSourceAdvisor,
}

// String implements fmt.Stringer.
func (s RecommendationSource) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RecommendationSource.
func (s RecommendationSource) IsValid() bool {
	for _, candidate := range validRecommendationSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRecommendationSource converts raw input into a RecommendationSource.
func ParseRecommendationSource(value string) (RecommendationSource, error) {
	for _, candidate := range validRecommendationSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid recommendation source %q", value)
}
