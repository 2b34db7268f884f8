package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tripdesk/internal/domain"
	"tripdesk/internal/models"
)

const userColumns = `id, email, full_name, phone, role, company_id, department, password_hash, is_active, created_at, updated_at`

func (d *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ? COLLATE NOCASE`, email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUserNotFound, email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

func (d *DB) ListUsers(ctx context.Context, companyID string) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	args := []any{}
	if companyID != "" {
		query += ` WHERE company_id = ?`
		args = append(args, companyID)
	}
	query += ` ORDER BY created_at`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (d *DB) InsertUser(ctx context.Context, user *models.User) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.FullName, user.Phone, string(user.Role),
		user.CompanyID, user.Department, user.PasswordHash, user.IsActive,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: users.email") {
			return fmt.Errorf("%w: %s", domain.ErrEmailTaken, user.Email)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (d *DB) UpdateUser(ctx context.Context, user *models.User) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE users SET email = ?, full_name = ?, phone = ?, role = ?, company_id = ?,
            department = ?, password_hash = ?, is_active = ?, updated_at = ?
         WHERE id = ?`,
		user.Email, user.FullName, user.Phone, string(user.Role), user.CompanyID,
		user.Department, user.PasswordHash, user.IsActive, user.UpdatedAt, user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, user.ID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var role string
	var phone, companyID, department sql.NullString

	err := row.Scan(&user.ID, &user.Email, &user.FullName, &phone, &role,
		&companyID, &department, &user.PasswordHash, &user.IsActive,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	user.Role = models.Role(role)
	user.Phone = phone.String
	user.CompanyID = companyID.String
	user.Department = department.String
	return &user, nil
}
