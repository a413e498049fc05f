package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careertracker/internal/profile"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// current_position backs the CurrentRole field: CURRENT_ROLE is a reserved
// word in PostgreSQL and cannot be used as an unquoted column name.
const profileColumns = `user_id, name, current_position, skills, preferred_roles, target_countries, notifications_enabled, contact_address`

func (r *ProfileRepository) ListAll(ctx context.Context) ([]profile.Snapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY user_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []profile.Snapshot{}
	for rows.Next() {
		var p profile.Snapshot
		if err := scanProfile(rows, &p); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepository) Get(ctx context.Context, userID int64) (*profile.Snapshot, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		userID,
	)

	var p profile.Snapshot
	if err := scanProfile(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Snapshot) error {
	p = p.Sanitized()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			current_role = EXCLUDED.current_role,
			skills = EXCLUDED.skills,
			preferred_roles = EXCLUDED.preferred_roles,
			target_countries = EXCLUDED.target_countries,
			notifications_enabled = EXCLUDED.notifications_enabled,
			contact_address = EXCLUDED.contact_address`,
		p.UserID, p.Name, p.CurrentRole, p.Skills, p.PreferredRoles,
		p.TargetCountries, p.NotificationsEnabled, p.ContactAddress,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

func scanProfile(row pgx.Row, p *profile.Snapshot) error {
	err := row.Scan(
		&p.UserID, &p.Name, &p.CurrentRole, &p.Skills, &p.PreferredRoles,
		&p.TargetCountries, &p.NotificationsEnabled, &p.ContactAddress,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		return fmt.Errorf("scan profile: %w", err)
	}
	return nil
}
