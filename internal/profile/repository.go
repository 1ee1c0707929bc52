// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrProfileNotFound indicates the user has not created a profile yet
var ErrProfileNotFound = errors.New("profile not found")

// Repository defines the profile repository interface
type Repository interface {
	CreateProfile(ctx context.Context, p *Profile) error
	GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
	UpdatePhoto(ctx context.Context, userID int64, url string) error

	// ListProfiles returns every profile (candidate browsing)
	ListProfiles(ctx context.Context) ([]*Profile, error)

	// ListCandidates returns all profiles except the given user's,
	// optionally narrowed by an age band and/or city.
	ListCandidates(ctx context.Context, excludeUserID int64, filter *CandidateFilter) ([]*Profile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL profile repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateProfile(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, preferred_name, age, gender, city, bio, occupation,
			debate_style, communication_preference, conflict_questions, conflict_answers, photo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.PreferredName, p.Age, p.Gender, p.City, p.Bio, p.Occupation,
		p.DebateStyle, p.CommunicationPreference,
		pq.Array([]string(p.ConflictQuestions)), pq.Array([]string(p.ConflictAnswers)),
		p.Photo,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetProfileByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	var setClauses []string
	var args []interface{}
	argCount := 1

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if req.PreferredName != nil {
		addClause("preferred_name", *req.PreferredName)
	}
	if req.Age != nil {
		addClause("age", *req.Age)
	}
	if req.Gender != nil {
		addClause("gender", *req.Gender)
	}
	if req.City != nil {
		addClause("city", *req.City)
	}
	if req.Bio != nil {
		addClause("bio", *req.Bio)
	}
	if req.Occupation != nil {
		addClause("occupation", *req.Occupation)
	}
	if req.DebateStyle != nil {
		addClause("debate_style", *req.DebateStyle)
	}
	if req.CommunicationPreference != nil {
		addClause("communication_preference", *req.CommunicationPreference)
	}
	if req.ConflictQuestions != nil {
		addClause("conflict_questions", pq.Array(req.ConflictQuestions))
	}
	if req.ConflictAnswers != nil {
		addClause("conflict_answers", pq.Array(req.ConflictAnswers))
	}

	addClause("updated_at", time.Now())
	args = append(args, userID)

	query := fmt.Sprintf(`
		UPDATE profiles
		SET %s
		WHERE user_id = $%d`,
		strings.Join(setClauses, ", "),
		argCount,
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrProfileNotFound
	}

	return r.GetProfileByUserID(ctx, userID)
}

func (r *postgresRepository) UpdatePhoto(ctx context.Context, userID int64, url string) error {
	query := `UPDATE profiles SET photo = $1, updated_at = $2 WHERE user_id = $3`

	var photoValue interface{}
	if url == "" {
		photoValue = nil
	} else {
		photoValue = url
	}

	_, err := r.db.ExecContext(ctx, query, photoValue, time.Now(), userID)
	return err
}

func (r *postgresRepository) ListProfiles(ctx context.Context) ([]*Profile, error) {
	profiles := []*Profile{}
	query := `SELECT * FROM profiles ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &profiles, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

func (r *postgresRepository) ListCandidates(ctx context.Context, excludeUserID int64, filter *CandidateFilter) ([]*Profile, error) {
	profiles := []*Profile{}

	query := `SELECT * FROM profiles WHERE user_id != $1`
	args := []interface{}{excludeUserID}
	argCount := 2

	if filter != nil {
		if filter.MinAge > 0 {
			query += fmt.Sprintf(" AND age >= $%d", argCount)
			args = append(args, filter.MinAge)
			argCount++
		}
		if filter.MaxAge > 0 {
			query += fmt.Sprintf(" AND age <= $%d", argCount)
			args = append(args, filter.MaxAge)
			argCount++
		}
		if filter.City != "" {
			query += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", argCount)
			args = append(args, filter.City)
			argCount++
		}
	}

	query += " ORDER BY created_at ASC"

	err := r.db.SelectContext(ctx, &profiles, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	return profiles, nil
}
