package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"devconnector/internal/model"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Upsert inserts the profile or, when the user already has one, overwrites
// its fields while keeping the original row id and creation time.
func (r *ProfileRepository) Upsert(ctx context.Context, p model.Profile) (model.Profile, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (id, user_id, company, website, location, status, skills, bio,
		                       github_username, youtube, twitter, facebook, linkedin, instagram,
		                       created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 ON CONFLICT (user_id) DO UPDATE SET
		     company = EXCLUDED.company,
		     website = EXCLUDED.website,
		     location = EXCLUDED.location,
		     status = EXCLUDED.status,
		     skills = EXCLUDED.skills,
		     bio = EXCLUDED.bio,
		     github_username = EXCLUDED.github_username,
		     youtube = EXCLUDED.youtube,
		     twitter = EXCLUDED.twitter,
		     facebook = EXCLUDED.facebook,
		     linkedin = EXCLUDED.linkedin,
		     instagram = EXCLUDED.instagram,
		     updated_at = EXCLUDED.updated_at
		 RETURNING id, created_at`,
		p.ID, p.User.ID, p.Company, p.Website, p.Location, p.Status, p.Skills, p.Bio,
		p.GithubUsername, p.Social.Youtube, p.Social.Twitter, p.Social.Facebook,
		p.Social.Linkedin, p.Social.Instagram, p.CreatedAt, p.UpdatedAt).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return model.Profile{}, fmt.Errorf("upsert profile: %w", err)
	}

	return r.FindByUserID(ctx, p.User.ID)
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (model.Profile, error) {
	p, err := r.scanProfile(r.pool.QueryRow(ctx, selectProfileSQL+` WHERE p.user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Profile{}, model.ErrProfileNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("find profile: %w", err)
	}

	if err := r.loadEntries(ctx, &p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]model.Profile, error) {
	rows, err := r.pool.Query(ctx, selectProfileSQL+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0)
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range profiles {
		if err := r.loadEntries(ctx, &profiles[i]); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepository) AddExperience(ctx context.Context, profileID string, e model.Experience) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profile_experience (id, profile_id, title, company, location, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, profileID, e.Title, e.Company, e.Location, e.From, e.To, e.Current, e.Description)
	if err != nil {
		return fmt.Errorf("add experience: %w", err)
	}
	return nil
}

func (r *ProfileRepository) RemoveExperience(ctx context.Context, profileID string, experienceID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM profile_experience WHERE id = $1 AND profile_id = $2`,
		experienceID, profileID)
	if err != nil {
		return fmt.Errorf("remove experience: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrExperienceNotFound
	}
	return nil
}

func (r *ProfileRepository) AddEducation(ctx context.Context, profileID string, e model.Education) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO profile_education (id, profile_id, school, degree, field_of_study, from_date, to_date, current, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, profileID, e.School, e.Degree, e.FieldOfStudy, e.From, e.To, e.Current, e.Description)
	if err != nil {
		return fmt.Errorf("add education: %w", err)
	}
	return nil
}

func (r *ProfileRepository) RemoveEducation(ctx context.Context, profileID string, educationID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM profile_education WHERE id = $1 AND profile_id = $2`,
		educationID, profileID)
	if err != nil {
		return fmt.Errorf("remove education: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrEducationNotFound
	}
	return nil
}

const selectProfileSQL = `
	SELECT p.id, p.user_id, u.name, u.avatar, p.company, p.website, p.location,
	       p.status, p.skills, p.bio, p.github_username,
	       p.youtube, p.twitter, p.facebook, p.linkedin, p.instagram,
	       p.created_at, p.updated_at
	FROM profiles p
	JOIN users u ON u.id = p.user_id`

func (r *ProfileRepository) scanProfile(row pgx.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.User.ID, &p.User.Name, &p.User.Avatar, &p.Company, &p.Website,
		&p.Location, &p.Status, &p.Skills, &p.Bio, &p.GithubUsername,
		&p.Social.Youtube, &p.Social.Twitter, &p.Social.Facebook, &p.Social.Linkedin,
		&p.Social.Instagram, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *ProfileRepository) loadEntries(ctx context.Context, p *model.Profile) error {
	p.Experience = make([]model.Experience, 0)
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, company, location, from_date, to_date, current, description
		 FROM profile_experience WHERE profile_id = $1
		 ORDER BY from_date DESC, created_at DESC`, p.ID)
	if err != nil {
		return fmt.Errorf("list experience: %w", err)
	}
	for rows.Next() {
		var e model.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Location, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			rows.Close()
			return fmt.Errorf("scan experience: %w", err)
		}
		p.Experience = append(p.Experience, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	p.Education = make([]model.Education, 0)
	rows, err = r.pool.Query(ctx,
		`SELECT id, school, degree, field_of_study, from_date, to_date, current, description
		 FROM profile_education WHERE profile_id = $1
		 ORDER BY from_date DESC, created_at DESC`, p.ID)
	if err != nil {
		return fmt.Errorf("list education: %w", err)
	}
	for rows.Next() {
		var e model.Education
		if err := rows.Scan(&e.ID, &e.School, &e.Degree, &e.FieldOfStudy, &e.From, &e.To, &e.Current, &e.Description); err != nil {
			rows.Close()
			return fmt.Errorf("scan education: %w", err)
		}
		p.Education = append(p.Education, e)
	}
	rows.Close()
	return rows.Err()
}
