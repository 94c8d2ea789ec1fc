package models

// Recommendation is the ephemeral result of a matcher scan. Produced fresh per
// query, never persisted.
type Recommendation struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// ViewerAttributes is the attribute bundle the matcher evaluates candidates
// against. Fields not applicable to the viewer's role carry neutral defaults:
// 0 funding, nil industry, false mentor need.
type ViewerAttributes struct {
	Funding      float64
	Industry     *string
	MentorNeeded bool
}
