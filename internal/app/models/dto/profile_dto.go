package dto

// ProfileResponse is the viewer's own profile for the profile screen. Exactly
// one of the four attribute bundles is set, matching Role.
type ProfileResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	Entrepreneur *EntrepreneurAttributes `json:"entrepreneur,omitempty"`
	Startup      *StartupAttributes      `json:"startup,omitempty"`
	Mentor       *MentorAttributes       `json:"mentor,omitempty"`
	Investor     *InvestorAttributes     `json:"investor,omitempty"`
}

// RecommendationResponse wraps a matcher run. Partial is set when one or more
// role collections failed to scan; Failed names them.
type RecommendationResponse struct {
	Recommendations []RecommendationItem `json:"recommendations"`
	Partial         bool                 `json:"partial,omitempty"`
	Failed          []string             `json:"failedCollections,omitempty"`
}

// RecommendationItem is one recommended peer
type RecommendationItem struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// UserSearchResponse wraps a name-prefix search across the role collections.
// Partial and Failed mirror RecommendationResponse.
type UserSearchResponse struct {
	Users   []UserSearchItem `json:"users"`
	Partial bool             `json:"partial,omitempty"`
	Failed  []string         `json:"failedCollections,omitempty"`
}

// UserSearchItem is one search match
type UserSearchItem struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}
