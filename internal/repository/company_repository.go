package repository

import (
	"context"

	"greenleaf/internal/database"
	"greenleaf/internal/domain/company"

	"github.com/google/uuid"
)

const companyColumns = `id, name, description, esg_score, b_corp, industry, location, website, contact_email, company_size, created_at, updated_at`

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) CreateCompany(ctx context.Context, c company.Company) (company.Company, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO companies (id, name, description, esg_score, b_corp, industry, location, website, contact_email, company_size)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.Description, c.ESGScore, c.BCorp, c.Industry, c.Location, c.Website, c.ContactEmail, c.CompanySize,
	)
	out, err := scanCompany(row)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return company.Company{}, company.ErrNameTaken
		}
		return company.Company{}, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) GetCompanyByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) GetCompanyByName(ctx context.Context, name string) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE name = $1`, name)
	return scanCompany(row)
}

// UpdateCompany overwrites every mutable column with c. Jobs follow a rename through the
// ON UPDATE CASCADE on jobs.business_name.
func (r *PostgresCompanyRepository) UpdateCompany(ctx context.Context, c company.Company) (company.Company, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE companies
		 SET name = $2, description = $3, esg_score = $4, b_corp = $5, industry = $6,
		     location = $7, website = $8, contact_email = $9, company_size = $10, updated_at = now()
		 WHERE id = $1
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.Description, c.ESGScore, c.BCorp, c.Industry, c.Location, c.Website, c.ContactEmail, c.CompanySize,
	)
	out, err := scanCompany(row)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return company.Company{}, company.ErrNameTaken
		}
		return company.Company{}, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) ListCompanyNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.ESGScore, &c.BCorp, &c.Industry,
		&c.Location, &c.Website, &c.ContactEmail, &c.CompanySize, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}
