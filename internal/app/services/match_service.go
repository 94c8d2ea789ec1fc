package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/pkg/logger"
)

// CandidateSource reads one role collection in the normalized candidate shape.
type CandidateSource interface {
	ListCandidates(ctx context.Context, role models.Role) ([]models.Candidate, error)
	SearchCandidates(ctx context.Context, role models.Role, prefix string) ([]models.Candidate, error)
}

// matchRule decides whether a candidate is recommended to the viewer.
type matchRule func(v *viewer, c *models.Candidate) bool

type viewer struct {
	id    string
	role  models.Role
	attrs models.ViewerAttributes
}

// sameRole recommends peers sharing the viewer's role.
func sameRole(v *viewer, c *models.Candidate) bool {
	return c.Role == v.role
}

// fundingSimilar recommends candidates whose funding value falls inside
// [0.8v, 1.2v]. The window is asymmetric on purpose: it is anchored on the
// viewer's value, so A matching B does not imply B matching A. At v == 0 the
// window collapses to exactly zero.
func fundingSimilar(v *viewer, c *models.Candidate) bool {
	f := v.attrs.Funding
	return c.Funding >= f*0.8 && c.Funding <= f*1.2
}

// mentorNeed covers both directions of the mentoring relation: a viewer who
// declared a mentoring need matches mentor candidates, and a mentor viewer
// matches candidates who declared availability to mentor.
func mentorNeed(v *viewer, c *models.Candidate) bool {
	if v.attrs.MentorNeeded && c.Role == models.RoleMentor {
		return true
	}
	return c.MentoringAvailable && v.role == models.RoleMentor
}

// industryMatch requires both sides to expose an industry attribute and the
// values to be equal.
func industryMatch(v *viewer, c *models.Candidate) bool {
	return v.attrs.Industry != nil && c.Industry != nil &&
		*v.attrs.Industry != "" && *v.attrs.Industry == *c.Industry
}

// affinity builds a rule recommending candidates of one role to viewers of
// another. The pairs are directional: candidates are already constrained by
// the collection being scanned.
func affinity(viewerRole, candidateRole models.Role) matchRule {
	return func(v *viewer, c *models.Candidate) bool {
		return v.role == viewerRole && c.Role == candidateRole
	}
}

// commonRules apply in every collection scan.
var commonRules = []matchRule{sameRole, fundingSimilar, mentorNeed}

// collectionRules extend the common set per scanned collection. The table is
// deliberately uneven: which cross-role affinities fire depends on the
// collection being scanned, not just the role pair.
var collectionRules = map[models.Role][]matchRule{
	models.RoleEntrepreneur: nil,
	models.RoleStartup: {
		industryMatch,
		affinity(models.RoleInvestor, models.RoleStartup),
	},
	models.RoleMentor: {
		industryMatch,
		affinity(models.RoleEntrepreneur, models.RoleMentor),
	},
	models.RoleInvestor: {
		affinity(models.RoleEntrepreneur, models.RoleInvestor),
		affinity(models.RoleStartup, models.RoleInvestor),
	},
}

// MatchResult carries the recommendations plus the names of any collections
// whose scan failed.
type MatchResult struct {
	Recommendations []models.Recommendation
	Failed          []string
}

// MatchService produces peer recommendations by scanning the four role
// collections against the rule table.
type MatchService struct {
	candidates CandidateSource
}

// NewMatchService creates a new MatchService
func NewMatchService(candidates CandidateSource) *MatchService {
	return &MatchService{candidates: candidates}
}

// Recommend scans all four collections concurrently and includes every
// candidate, viewer excluded, for which any applicable rule holds. A failed
// collection scan never suppresses results gathered from the others: its name
// is reported in Failed and the joined error is returned alongside the
// partial result.
func (s *MatchService) Recommend(ctx context.Context, viewerID string, viewerRole models.Role, attrs models.ViewerAttributes) (*MatchResult, error) {
	v := &viewer{id: viewerID, role: viewerRole, attrs: attrs}

	buckets := make([][]models.Recommendation, len(models.Roles))
	scanErrs := make([]error, len(models.Roles))

	var wg sync.WaitGroup
	for i, role := range models.Roles {
		wg.Add(1)
		go func(i int, role models.Role) {
			defer wg.Done()

			candidates, err := s.candidates.ListCandidates(ctx, role)
			if err != nil {
				scanErrs[i] = fmt.Errorf("%s: %w", role, err)
				return
			}

			buckets[i] = s.filter(v, role, candidates)
		}(i, role)
	}
	wg.Wait()

	result := &MatchResult{}
	for i, role := range models.Roles {
		if scanErrs[i] != nil {
			logger.Warn().Err(scanErrs[i]).Str("collection", string(role)).Msg("Candidate collection scan failed")
			result.Failed = append(result.Failed, string(role))
			continue
		}
		result.Recommendations = append(result.Recommendations, buckets[i]...)
	}

	return result, errors.Join(scanErrs...)
}

// SearchResult carries name-search matches plus the names of any collections
// whose scan failed.
type SearchResult struct {
	Users  []models.Candidate
	Failed []string
}

// Search looks up users by name prefix across all four collections
// concurrently, viewer excluded, merging matches in fixed collection order.
// Like Recommend, a failed collection scan only narrows the result: its name
// is reported in Failed and the joined error is returned alongside it.
func (s *MatchService) Search(ctx context.Context, viewerID, query string) (*SearchResult, error) {
	buckets := make([][]models.Candidate, len(models.Roles))
	scanErrs := make([]error, len(models.Roles))

	var wg sync.WaitGroup
	for i, role := range models.Roles {
		wg.Add(1)
		go func(i int, role models.Role) {
			defer wg.Done()

			candidates, err := s.candidates.SearchCandidates(ctx, role, query)
			if err != nil {
				scanErrs[i] = fmt.Errorf("%s: %w", role, err)
				return
			}

			for _, c := range candidates {
				if c.UserID == viewerID {
					continue
				}
				buckets[i] = append(buckets[i], c)
			}
		}(i, role)
	}
	wg.Wait()

	result := &SearchResult{}
	for i, role := range models.Roles {
		if scanErrs[i] != nil {
			logger.Warn().Err(scanErrs[i]).Str("collection", string(role)).Msg("Candidate collection search failed")
			result.Failed = append(result.Failed, string(role))
			continue
		}
		result.Users = append(result.Users, buckets[i]...)
	}

	return result, errors.Join(scanErrs...)
}

func (s *MatchService) filter(v *viewer, collection models.Role, candidates []models.Candidate) []models.Recommendation {
	rules := append(append([]matchRule{}, commonRules...), collectionRules[collection]...)

	var recs []models.Recommendation
	for i := range candidates {
		c := &candidates[i]
		if c.UserID == v.id {
			continue
		}
		for _, rule := range rules {
			if rule(v, c) {
				recs = append(recs, models.Recommendation{
					UserID: c.UserID,
					Name:   c.Name,
					Role:   c.Role,
				})
				break
			}
		}
	}

	return recs
}
