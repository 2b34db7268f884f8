package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

const companyColumns = `id, name, tax_number, address, phone, email, service_fees, booking_rules, is_active, created_at, updated_at`

func (d *DB) GetCompany(ctx context.Context, id string) (*models.Company, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	company, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (d *DB) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (d *DB) InsertCompany(ctx context.Context, company *models.Company) error {
	fees, rules, err := marshalCompanyPolicies(company)
	if err != nil {
		return err
	}

	_, err = d.db.ExecContext(ctx,
		`INSERT INTO companies (`+companyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		company.ID, company.Name, company.TaxNumber, company.Address, company.Phone,
		company.Email, fees, rules, company.IsActive, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}
	return nil
}

func (d *DB) UpdateCompany(ctx context.Context, company *models.Company) error {
	fees, rules, err := marshalCompanyPolicies(company)
	if err != nil {
		return err
	}

	result, err := d.db.ExecContext(ctx,
		`UPDATE companies SET name = ?, tax_number = ?, address = ?, phone = ?, email = ?,
            service_fees = ?, booking_rules = ?, is_active = ?, updated_at = ?
         WHERE id = ?`,
		company.Name, company.TaxNumber, company.Address, company.Phone, company.Email,
		fees, rules, company.IsActive, company.UpdatedAt, company.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCompanyNotFound, company.ID)
	}
	return nil
}

func marshalCompanyPolicies(company *models.Company) (fees, rules []byte, err error) {
	fees, err = json.Marshal(company.ServiceFees)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal service fees: %w", err)
	}
	rules, err = json.Marshal(company.BookingRules)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal booking rules: %w", err)
	}
	return fees, rules, nil
}

func scanCompany(row rowScanner) (*models.Company, error) {
	var company models.Company
	var taxNumber, address, phone, email sql.NullString
	var fees, rules []byte

	err := row.Scan(&company.ID, &company.Name, &taxNumber, &address, &phone, &email,
		&fees, &rules, &company.IsActive, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return nil, err
	}

	company.TaxNumber = taxNumber.String
	company.Address = address.String
	company.Phone = phone.String
	company.Email = email.String

	// The fee table tolerates legacy bare-number entries via FeePolicy's
	// custom unmarshalling.
	if len(fees) > 0 {
		if err := json.Unmarshal(fees, &company.ServiceFees); err != nil {
			return nil, fmt.Errorf("failed to unmarshal service fees: %w", err)
		}
	}
	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &company.BookingRules); err != nil {
			return nil, fmt.Errorf("failed to unmarshal booking rules: %w", err)
		}
	}
	return &company, nil
}
