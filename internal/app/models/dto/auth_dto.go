package dto

// RegisterRequest carries a role-tagged registration. The role-specific
// attribute bundles are optional at the binding level; the auth service
// enforces that the bundle matching Role is present and complete before any
// write happens.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=entrepreneur startup mentor investor"`

	Entrepreneur *EntrepreneurAttributes `json:"entrepreneur,omitempty"`
	Startup      *StartupAttributes      `json:"startup,omitempty"`
	Mentor       *MentorAttributes       `json:"mentor,omitempty"`
	Investor     *InvestorAttributes     `json:"investor,omitempty"`
}

// EntrepreneurAttributes is the entrepreneur registration bundle
type EntrepreneurAttributes struct {
	FundingRequired float64 `json:"fundingRequired"`
	MentorNeeded    bool    `json:"mentorNeeded"`
	CollabNeeded    bool    `json:"collabNeeded"`
	InvestorType    string  `json:"investorType" binding:"required"`
}

// StartupAttributes is the startup registration bundle
type StartupAttributes struct {
	Description  string  `json:"description"`
	FundingGoal  float64 `json:"fundingGoal"`
	Industry     string  `json:"industry" binding:"required"`
	OpenToCollab bool    `json:"openToCollab"`
}

// MentorAttributes is the mentor registration bundle
type MentorAttributes struct {
	Industry       string  `json:"industry" binding:"required"`
	FeesPerHour    float64 `json:"feesPerHour"`
	HoursAvailable int     `json:"hoursAvailable"`
}

// InvestorAttributes is the investor registration bundle
type InvestorAttributes struct {
	InvestmentCapacity float64 `json:"investmentCapacity"`
	MentoringAvailable bool    `json:"mentoringAvailable"`
	PreferredIndustry  string  `json:"preferredIndustry" binding:"required"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents a successful authentication result
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
	UserID      string `json:"userId"`
	Role        string `json:"role"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}
