package models

import "time"

// Entrepreneur defines the entrepreneur profile based on the 'entrepreneurs' table
type Entrepreneur struct {
	UserID          string    `json:"userId" db:"user_id"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	FundingRequired float64   `json:"fundingRequired" db:"funding_required"`
	MentorNeeded    bool      `json:"mentorNeeded" db:"mentor_needed"`
	CollabNeeded    bool      `json:"collabNeeded" db:"collab_needed"`
	InvestorType    string    `json:"investorType" db:"investor_type"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// Startup defines the startup profile based on the 'startups' table
type Startup struct {
	UserID       string    `json:"userId" db:"user_id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Description  string    `json:"description" db:"description"`
	FundingGoal  float64   `json:"fundingGoal" db:"funding_goal"`
	Industry     string    `json:"industry" db:"industry"`
	OpenToCollab bool      `json:"openToCollab" db:"open_to_collab"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Mentor defines the mentor profile based on the 'mentors' table
type Mentor struct {
	UserID         string    `json:"userId" db:"user_id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	Industry       string    `json:"industry" db:"industry"`
	FeesPerHour    float64   `json:"feesPerHour" db:"fees_per_hour"`
	HoursAvailable int       `json:"hoursAvailable" db:"hours_available"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Investor defines the investor profile based on the 'investors' table
type Investor struct {
	UserID             string    `json:"userId" db:"user_id"`
	Name               string    `json:"name" db:"name"`
	Email              string    `json:"email" db:"email"`
	InvestmentCapacity float64   `json:"investmentCapacity" db:"investment_capacity"`
	MentoringAvailable bool      `json:"mentoringAvailable" db:"mentoring_available"`
	PreferredIndustry  string    `json:"preferredIndustry" db:"preferred_industry"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// Candidate is the role-normalized view of a profile row the matcher scans.
// Industry is nil for roles that carry no industry attribute; the mentor flags
// fold the role-specific semantics (an entrepreneur that needs a mentor, an
// investor that offers mentoring) into two booleans.
type Candidate struct {
	UserID             string
	Name               string
	Role               Role
	Funding            float64
	Industry           *string
	MentorNeeded       bool
	MentoringAvailable bool
}

// ParticipantInfo carries the per-participant display data denormalized onto a
// chat thread record.
type ParticipantInfo struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}
