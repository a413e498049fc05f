// Package postgres implements the stores on top of pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"careertracker/internal/job"
)

type PostingRepository struct {
	pool *pgxpool.Pool
}

func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{pool: pool}
}

// Insert stores a candidate for the user unless a posting with the same URL
// already exists. ON CONFLICT DO NOTHING keeps concurrent fetch passes safe.
func (r *PostingRepository) Insert(ctx context.Context, userID int64, c job.Candidate) (bool, *job.Posting, error) {
	p := job.NewPosting(userID, c)

	row := r.pool.QueryRow(ctx, `
		INSERT INTO postings (user_id, title, company, location, source, url, description, tags, posted_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, url) DO NOTHING
		RETURNING id`,
		p.UserID, p.Title, p.Company, p.Location, p.Source, p.URL, p.Description, p.Tags, p.PostedAt, string(p.Status),
	)

	if err := row.Scan(&p.ID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil, nil
		}
		return false, nil, fmt.Errorf("insert posting: %w", err)
	}

	return true, &p, nil
}

// List returns the user's postings, newest first, narrowed by the filter.
// Status matches exactly, location and source match case-insensitive
// substrings.
func (r *PostingRepository) List(ctx context.Context, userID int64, f job.ListFilter) ([]job.Posting, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, user_id, title, company, location, source, url, description, tags, posted_at, status
		FROM postings
		WHERE user_id = $1`)

	args := []any{userID}
	if f.Status != "" {
		args = append(args, string(f.Status))
		fmt.Fprintf(&query, " AND status = $%d", len(args))
	}
	if f.Location != "" {
		args = append(args, "%"+escapeLike(f.Location)+"%")
		fmt.Fprintf(&query, " AND location ILIKE $%d", len(args))
	}
	if f.Source != "" {
		args = append(args, "%"+escapeLike(f.Source)+"%")
		fmt.Fprintf(&query, " AND source ILIKE $%d", len(args))
	}
	query.WriteString(" ORDER BY posted_at DESC, id DESC")

	rows, err := r.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	defer rows.Close()

	postings := []job.Posting{}
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}

	return postings, nil
}

func (r *PostingRepository) Get(ctx context.Context, userID, id int64) (*job.Posting, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, user_id, title, company, location, source, url, description, tags, posted_at, status
		FROM postings
		WHERE user_id = $1 AND id = $2`,
		userID, id,
	)

	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, job.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

func (r *PostingRepository) UpdateStatus(ctx context.Context, userID, id int64, s job.Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE postings SET status = $1 WHERE user_id = $2 AND id = $3`,
		string(s), userID, id,
	)
	if err != nil {
		return fmt.Errorf("update posting status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostingRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM postings WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return fmt.Errorf("delete posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

// escapeLike escapes LIKE metacharacters so filter input matches literally
// instead of acting as a wildcard.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

func scanPosting(row pgx.Row) (*job.Posting, error) {
	var p job.Posting
	var status string

	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Company, &p.Location,
		&p.Source, &p.URL, &p.Description, &p.Tags, &p.PostedAt, &status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan posting: %w", err)
	}

	p.Status = job.Status(status)
	return &p, nil
}
