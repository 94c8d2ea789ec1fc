package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/venturelink/backend/internal/app/models"
)

type fakeCandidateSource struct {
	candidates map[models.Role][]models.Candidate
	failing    map[models.Role]error
}

func (f *fakeCandidateSource) ListCandidates(_ context.Context, role models.Role) ([]models.Candidate, error) {
	if err, ok := f.failing[role]; ok {
		return nil, err
	}
	return f.candidates[role], nil
}

func (f *fakeCandidateSource) SearchCandidates(_ context.Context, role models.Role, prefix string) ([]models.Candidate, error) {
	if err, ok := f.failing[role]; ok {
		return nil, err
	}
	var matches []models.Candidate
	for _, c := range f.candidates[role] {
		if strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(prefix)) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func strPtr(s string) *string { return &s }

func recommendedIDs(t *testing.T, result *MatchResult) map[string]bool {
	t.Helper()
	ids := make(map[string]bool, len(result.Recommendations))
	for _, r := range result.Recommendations {
		ids[r.UserID] = true
	}
	return ids
}

func TestRecommendFundingWindowBoundaries(t *testing.T) {
	const f = 10000.0

	tests := []struct {
		name     string
		funding  float64
		included bool
	}{
		{"equal funding included", f, true},
		{"upper boundary included", 1.2 * f, true},
		{"lower boundary included", 0.8 * f, true},
		{"just above upper excluded", 1.2*f + 1, false},
		{"just below lower excluded", 0.8*f - 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &fakeCandidateSource{
				candidates: map[models.Role][]models.Candidate{
					models.RoleStartup: {{
						UserID:  "candidate",
						Name:    "Acme",
						Role:    models.RoleStartup,
						Funding: tt.funding,
					}},
				},
			}
			svc := NewMatchService(source)

			// Entrepreneur viewer so neither same-role nor industry rules
			// can include the startup candidate.
			result, err := svc.Recommend(context.Background(), "viewer", models.RoleEntrepreneur, models.ViewerAttributes{Funding: f})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := recommendedIDs(t, result)["candidate"]; got != tt.included {
				t.Errorf("included = %v, want %v", got, tt.included)
			}
		})
	}
}

func TestRecommendZeroFundingMatchesOnlyZero(t *testing.T) {
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleStartup: {
				{UserID: "zero", Role: models.RoleStartup, Funding: 0},
				{UserID: "nonzero", Role: models.RoleStartup, Funding: 1},
			},
		},
	}
	svc := NewMatchService(source)

	result, err := svc.Recommend(context.Background(), "viewer", models.RoleEntrepreneur, models.ViewerAttributes{Funding: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := recommendedIDs(t, result)
	if !ids["zero"] {
		t.Error("candidate with zero funding should match a zero-funding viewer")
	}
	if ids["nonzero"] {
		t.Error("candidate with nonzero funding should not match a zero-funding viewer")
	}
}

func TestRecommendNegativeFundingExcludesAll(t *testing.T) {
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleStartup: {
				{UserID: "a", Role: models.RoleStartup, Funding: -100},
				{UserID: "b", Role: models.RoleStartup, Funding: 0},
				{UserID: "c", Role: models.RoleStartup, Funding: 100},
			},
		},
	}
	svc := NewMatchService(source)

	// The window inverts for negative viewer funding, so nothing satisfies
	// the funding rule.
	result, err := svc.Recommend(context.Background(), "viewer", models.RoleEntrepreneur, models.ViewerAttributes{Funding: -100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %d", len(result.Recommendations))
	}
}

func TestRecommendEntrepreneurScenario(t *testing.T) {
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleEntrepreneur: {
				{UserID: "peer-en", Name: "Peer", Role: models.RoleEntrepreneur, Funding: 10900},
			},
			models.RoleMentor: {
				{UserID: "mentor", Name: "Mentor", Role: models.RoleMentor, Funding: 0, Industry: strPtr("fintech"), MentoringAvailable: true},
			},
			models.RoleInvestor: {
				{UserID: "investor", Name: "Investor", Role: models.RoleInvestor, Funding: 50000, Industry: strPtr("fintech"), MentoringAvailable: false},
			},
			models.RoleStartup: {
				{UserID: "startup", Name: "Startup", Role: models.RoleStartup, Funding: 50000, Industry: strPtr("fintech")},
			},
		},
	}
	svc := NewMatchService(source)

	attrs := models.ViewerAttributes{Funding: 10000, MentorNeeded: true}
	result, err := svc.Recommend(context.Background(), "viewer", models.RoleEntrepreneur, attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := recommendedIDs(t, result)
	if !ids["mentor"] {
		t.Error("mentor should be included via the mentoring-need rule")
	}
	if !ids["peer-en"] {
		t.Error("entrepreneur with funding 10900 should be included via the funding window")
	}
	if !ids["investor"] {
		t.Error("investor should be included via the entrepreneur-investor affinity")
	}
	if ids["startup"] {
		t.Error("startup with far funding and no shared industry should be excluded")
	}
}

func TestRecommendExcludesViewer(t *testing.T) {
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleMentor: {
				{UserID: "viewer", Name: "Self", Role: models.RoleMentor},
				{UserID: "other", Name: "Other", Role: models.RoleMentor},
			},
		},
	}
	svc := NewMatchService(source)

	result, err := svc.Recommend(context.Background(), "viewer", models.RoleMentor, models.ViewerAttributes{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := recommendedIDs(t, result)
	if ids["viewer"] {
		t.Error("viewer must never be recommended to themselves")
	}
	if !ids["other"] {
		t.Error("same-role peer should be recommended")
	}
}

func TestRecommendMentorViewerSeesMentoringInvestors(t *testing.T) {
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleInvestor: {
				{UserID: "mentoring", Role: models.RoleInvestor, Funding: 1e9, MentoringAvailable: true},
				{UserID: "plain", Role: models.RoleInvestor, Funding: 1e9},
			},
		},
	}
	svc := NewMatchService(source)

	result, err := svc.Recommend(context.Background(), "viewer", models.RoleMentor, models.ViewerAttributes{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := recommendedIDs(t, result)
	if !ids["mentoring"] {
		t.Error("investor offering mentoring should match a mentor viewer")
	}
	if ids["plain"] {
		t.Error("investor without mentoring should not match a mentor viewer")
	}
}

func TestRecommendIndustryMatchPerCollection(t *testing.T) {
	industry := "healthtech"
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleStartup: {
				{UserID: "same-industry", Role: models.RoleStartup, Funding: 1e9, Industry: strPtr(industry)},
				{UserID: "other-industry", Role: models.RoleStartup, Funding: 1e9, Industry: strPtr("agritech")},
			},
			models.RoleInvestor: {
				// The investors scan carries no industry rule, so a shared
				// industry alone must not include this candidate.
				{UserID: "inv-same-industry", Role: models.RoleInvestor, Funding: 1e9, Industry: strPtr(industry)},
			},
		},
	}
	svc := NewMatchService(source)

	attrs := models.ViewerAttributes{Funding: 100, Industry: strPtr(industry)}
	result, err := svc.Recommend(context.Background(), "viewer", models.RoleMentor, attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := recommendedIDs(t, result)
	if !ids["same-industry"] {
		t.Error("startup sharing the viewer's industry should be included")
	}
	if ids["other-industry"] {
		t.Error("startup in a different industry should be excluded")
	}
	if ids["inv-same-industry"] {
		t.Error("industry match must not apply in the investors scan")
	}
}

func TestRecommendPartialFailure(t *testing.T) {
	scanErr := errors.New("collection unavailable")
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleEntrepreneur: {
				{UserID: "peer", Role: models.RoleEntrepreneur},
			},
		},
		failing: map[models.Role]error{
			models.RoleMentor: scanErr,
		},
	}
	svc := NewMatchService(source)

	result, err := svc.Recommend(context.Background(), "viewer", models.RoleEntrepreneur, models.ViewerAttributes{})
	if err == nil {
		t.Fatal("expected joined error for the failed collection")
	}
	if !errors.Is(err, scanErr) {
		t.Errorf("joined error should wrap the scan failure, got %v", err)
	}

	if !recommendedIDs(t, result)["peer"] {
		t.Error("results from healthy collections must survive a failed scan")
	}
	if len(result.Failed) != 1 || result.Failed[0] != string(models.RoleMentor) {
		t.Errorf("Failed = %v, want [mentor]", result.Failed)
	}
}

func TestRecommendScanOrderStable(t *testing.T) {
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleEntrepreneur: {{UserID: "e1", Role: models.RoleEntrepreneur}},
			models.RoleStartup:      {{UserID: "s1", Role: models.RoleStartup, Funding: 0}},
			models.RoleMentor:       {{UserID: "m1", Role: models.RoleMentor, MentoringAvailable: true}},
			models.RoleInvestor:     {{UserID: "i1", Role: models.RoleInvestor, Funding: 0, MentoringAvailable: true}},
		},
	}
	svc := NewMatchService(source)

	// A mentor viewer with zero funding matches something in every
	// collection; the output must follow the fixed collection order even
	// though the scans run concurrently.
	result, err := svc.Recommend(context.Background(), "viewer", models.RoleMentor, models.ViewerAttributes{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"e1", "s1", "m1", "i1"}
	if len(result.Recommendations) != len(want) {
		t.Fatalf("got %d recommendations, want %d", len(result.Recommendations), len(want))
	}
	for i, id := range want {
		if result.Recommendations[i].UserID != id {
			t.Errorf("position %d = %s, want %s", i, result.Recommendations[i].UserID, id)
		}
	}
}

func TestSearchMergesCollectionsInScanOrder(t *testing.T) {
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleEntrepreneur: {
				{UserID: "e1", Name: "alice", Role: models.RoleEntrepreneur},
				{UserID: "e2", Name: "bob", Role: models.RoleEntrepreneur},
			},
			models.RoleStartup: {
				{UserID: "s1", Name: "alphaworks", Role: models.RoleStartup},
			},
			models.RoleMentor: {
				{UserID: "m1", Name: "Albert", Role: models.RoleMentor},
			},
			models.RoleInvestor: {
				{UserID: "i1", Name: "alan", Role: models.RoleInvestor},
			},
		},
	}
	svc := NewMatchService(source)

	result, err := svc.Search(context.Background(), "viewer", "al")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	var ids []string
	for _, u := range result.Users {
		ids = append(ids, u.UserID)
	}
	want := []string{"e1", "s1", "m1", "i1"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestSearchExcludesViewer(t *testing.T) {
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleMentor: {
				{UserID: "viewer", Name: "alice", Role: models.RoleMentor},
				{UserID: "m2", Name: "alina", Role: models.RoleMentor},
			},
		},
	}
	svc := NewMatchService(source)

	result, err := svc.Search(context.Background(), "viewer", "al")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(result.Users) != 1 || result.Users[0].UserID != "m2" {
		t.Errorf("users = %+v, want only m2", result.Users)
	}
}

func TestSearchPartialFailure(t *testing.T) {
	scanErr := errors.New("collection unavailable")
	source := &fakeCandidateSource{
		candidates: map[models.Role][]models.Candidate{
			models.RoleEntrepreneur: {
				{UserID: "e1", Name: "alice", Role: models.RoleEntrepreneur},
			},
		},
		failing: map[models.Role]error{
			models.RoleInvestor: scanErr,
		},
	}
	svc := NewMatchService(source)

	result, err := svc.Search(context.Background(), "viewer", "al")
	if !errors.Is(err, scanErr) {
		t.Errorf("err = %v, want wrapped scan error", err)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "investor" {
		t.Errorf("failed = %v, want [investor]", result.Failed)
	}
	if len(result.Users) != 1 || result.Users[0].UserID != "e1" {
		t.Errorf("users = %+v, want partial results", result.Users)
	}
}
