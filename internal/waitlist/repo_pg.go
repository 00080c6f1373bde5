package waitlist

import (
	"context"
	"database/sql"
)

// PGRepo implements WaitlistRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new waitlist entry.
func (r *PGRepo) Create(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO waitlist (
    id,
    email,
    name,
    position,
    industry,
    leads_per_week,
    company_size,
    use_case,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Email,
		entry.Name,
		nullable(entry.Position),
		nullable(entry.Industry),
		entry.LeadsPerWeek,
		nullable(entry.CompanySize),
		nullable(entry.UseCase),
		entry.CreatedAt,
	)
	return err
}

// List returns all waitlist entries, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Entry, error) {
	const query = `
SELECT id, email, name, position, industry, leads_per_week, company_size, use_case, created_at
FROM waitlist
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var position, industry, companySize, useCase sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.Email,
			&entry.Name,
			&position,
			&industry,
			&entry.LeadsPerWeek,
			&companySize,
			&useCase,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		entry.Position = position.String
		entry.Industry = industry.String
		entry.CompanySize = companySize.String
		entry.UseCase = useCase.String
		out = append(out, entry)
	}
	return out, rows.Err()
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ WaitlistRepo = (*PGRepo)(nil)
