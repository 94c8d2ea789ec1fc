package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/venturelink/backend/internal/app/models"
	"github.com/venturelink/backend/internal/pkg/apperrors"
)

// ProfileRepository handles database operations for the four role-partitioned
// profile collections.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateEntrepreneurTx inserts an entrepreneur profile within an existing transaction
func (r *ProfileRepository) CreateEntrepreneurTx(ctx context.Context, tx pgx.Tx, p *models.Entrepreneur) error {
	query := `
		INSERT INTO entrepreneurs (user_id, name, email, funding_required, mentor_needed, collab_needed, investor_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		p.UserID, p.Name, p.Email, p.FundingRequired, p.MentorNeeded, p.CollabNeeded, p.InvestorType,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating entrepreneur profile: %w", err)
	}

	return nil
}

// CreateStartupTx inserts a startup profile within an existing transaction
func (r *ProfileRepository) CreateStartupTx(ctx context.Context, tx pgx.Tx, p *models.Startup) error {
	query := `
		INSERT INTO startups (user_id, name, email, description, funding_goal, industry, open_to_collab)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		p.UserID, p.Name, p.Email, p.Description, p.FundingGoal, p.Industry, p.OpenToCollab,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating startup profile: %w", err)
	}

	return nil
}

// CreateMentorTx inserts a mentor profile within an existing transaction
func (r *ProfileRepository) CreateMentorTx(ctx context.Context, tx pgx.Tx, p *models.Mentor) error {
	query := `
		INSERT INTO mentors (user_id, name, email, industry, fees_per_hour, hours_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		p.UserID, p.Name, p.Email, p.Industry, p.FeesPerHour, p.HoursAvailable,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating mentor profile: %w", err)
	}

	return nil
}

// CreateInvestorTx inserts an investor profile within an existing transaction
func (r *ProfileRepository) CreateInvestorTx(ctx context.Context, tx pgx.Tx, p *models.Investor) error {
	query := `
		INSERT INTO investors (user_id, name, email, investment_capacity, mentoring_available, preferred_industry)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := tx.QueryRow(ctx, query,
		p.UserID, p.Name, p.Email, p.InvestmentCapacity, p.MentoringAvailable, p.PreferredIndustry,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating investor profile: %w", err)
	}

	return nil
}

// GetEntrepreneur retrieves an entrepreneur profile by user id
func (r *ProfileRepository) GetEntrepreneur(ctx context.Context, userID string) (*models.Entrepreneur, error) {
	query := `
		SELECT user_id, name, email, funding_required, mentor_needed, collab_needed, investor_type, created_at
		FROM entrepreneurs
		WHERE user_id = $1
	`

	var p models.Entrepreneur
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Email, &p.FundingRequired, &p.MentorNeeded, &p.CollabNeeded, &p.InvestorType, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving entrepreneur profile: %w", err)
	}

	return &p, nil
}

// GetStartup retrieves a startup profile by user id
func (r *ProfileRepository) GetStartup(ctx context.Context, userID string) (*models.Startup, error) {
	query := `
		SELECT user_id, name, email, description, funding_goal, industry, open_to_collab, created_at
		FROM startups
		WHERE user_id = $1
	`

	var p models.Startup
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Email, &p.Description, &p.FundingGoal, &p.Industry, &p.OpenToCollab, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving startup profile: %w", err)
	}

	return &p, nil
}

// GetMentor retrieves a mentor profile by user id
func (r *ProfileRepository) GetMentor(ctx context.Context, userID string) (*models.Mentor, error) {
	query := `
		SELECT user_id, name, email, industry, fees_per_hour, hours_available, created_at
		FROM mentors
		WHERE user_id = $1
	`

	var p models.Mentor
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Email, &p.Industry, &p.FeesPerHour, &p.HoursAvailable, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving mentor profile: %w", err)
	}

	return &p, nil
}

// GetInvestor retrieves an investor profile by user id
func (r *ProfileRepository) GetInvestor(ctx context.Context, userID string) (*models.Investor, error) {
	query := `
		SELECT user_id, name, email, investment_capacity, mentoring_available, preferred_industry, created_at
		FROM investors
		WHERE user_id = $1
	`

	var p models.Investor
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Email, &p.InvestmentCapacity, &p.MentoringAvailable, &p.PreferredIndustry, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving investor profile: %w", err)
	}

	return &p, nil
}

// candidateColumns maps each role collection to the select list that
// normalizes its rows into the Candidate shape: id, name, funding value,
// industry (NULL when the role has none) and the two mentor flags.
var candidateColumns = map[models.Role]struct {
	table   string
	columns []string
}{
	models.RoleEntrepreneur: {
		table: "entrepreneurs",
		columns: []string{
			"user_id", "name", "funding_required",
			"NULL::text AS industry", "mentor_needed", "FALSE AS mentoring_available",
		},
	},
	models.RoleStartup: {
		table: "startups",
		columns: []string{
			"user_id", "name", "funding_goal",
			"industry", "FALSE AS mentor_needed", "FALSE AS mentoring_available",
		},
	},
	models.RoleMentor: {
		table: "mentors",
		columns: []string{
			"user_id", "name", "0::double precision AS funding",
			"industry", "FALSE AS mentor_needed", "TRUE AS mentoring_available",
		},
	},
	models.RoleInvestor: {
		table: "investors",
		columns: []string{
			"user_id", "name", "investment_capacity",
			"preferred_industry", "FALSE AS mentor_needed", "mentoring_available",
		},
	},
}

// ListCandidates scans one role collection and returns its rows in the
// normalized Candidate shape, ordered by creation for a stable scan order.
func (r *ProfileRepository) ListCandidates(ctx context.Context, role models.Role) ([]models.Candidate, error) {
	spec, ok := candidateColumns[role]
	if !ok {
		return nil, fmt.Errorf("unknown candidate collection: %s", role)
	}

	queryBuilder := squirrel.Select(spec.columns...).
		From(spec.table).
		OrderBy("created_at", "user_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error scanning %s collection: %w", spec.table, err)
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		c := models.Candidate{Role: role}
		var industry *string

		err := rows.Scan(
			&c.UserID,
			&c.Name,
			&c.Funding,
			&industry,
			&c.MentorNeeded,
			&c.MentoringAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning candidate row: %w", err)
		}

		c.Industry = industry
		candidates = append(candidates, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate rows: %w", err)
	}

	return candidates, nil
}

// SearchCandidates scans one role collection for names starting with prefix,
// case-insensitively, returning matches in the normalized Candidate shape.
func (r *ProfileRepository) SearchCandidates(ctx context.Context, role models.Role, prefix string) ([]models.Candidate, error) {
	spec, ok := candidateColumns[role]
	if !ok {
		return nil, fmt.Errorf("unknown candidate collection: %s", role)
	}

	queryBuilder := squirrel.Select(spec.columns...).
		From(spec.table).
		Where(squirrel.ILike{"name": prefix + "%"}).
		OrderBy("name", "user_id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching %s collection: %w", spec.table, err)
	}
	defer rows.Close()

	var candidates []models.Candidate
	for rows.Next() {
		c := models.Candidate{Role: role}
		var industry *string

		err := rows.Scan(
			&c.UserID,
			&c.Name,
			&c.Funding,
			&industry,
			&c.MentorNeeded,
			&c.MentoringAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning candidate row: %w", err)
		}

		c.Industry = industry
		candidates = append(candidates, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate rows: %w", err)
	}

	return candidates, nil
}

// LookupParticipant resolves a user id to display name and role by scanning
// the four collections in fixed order; the first collection that holds the id
// wins. Returns ErrProfileNotFound when no collection matches.
func (r *ProfileRepository) LookupParticipant(ctx context.Context, userID string) (string, models.Role, error) {
	lookups := []struct {
		role  models.Role
		query string
	}{
		{models.RoleEntrepreneur, `SELECT name FROM entrepreneurs WHERE user_id = $1`},
		{models.RoleStartup, `SELECT name FROM startups WHERE user_id = $1`},
		{models.RoleMentor, `SELECT name FROM mentors WHERE user_id = $1`},
		{models.RoleInvestor, `SELECT name FROM investors WHERE user_id = $1`},
	}

	for _, lookup := range lookups {
		var name string
		err := r.db.QueryRow(ctx, lookup.query, userID).Scan(&name)
		if err == nil {
			return name, lookup.role, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return "", models.RoleUnknown, fmt.Errorf("error looking up participant in %s collection: %w", lookup.role, err)
		}
	}

	return "", models.RoleUnknown, apperrors.ErrProfileNotFound
}
