package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staff-service/internal/domain"
)

// StaffRepository handles persistence for staff records.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	List(ctx context.Context) ([]domain.StaffMember, error)
	UpdateFields(ctx context.Context, id string, fields map[string]string) (*domain.StaffMember, error)
	Delete(ctx context.Context, id string) error
	FindConflict(ctx context.Context, q ConflictQuery) (string, error)
	CountByRole(ctx context.Context, role, excludeID string) (int, error)
}

// ConflictQuery describes a uniqueness probe across the unique columns.
// Only non-nil fields participate; ExcludeID removes the record being
// updated from consideration.
type ConflictQuery struct {
	Email     *string
	Phone     *string
	CNIC      *string
	ExcludeID string
}

const staffColumns = "id, username, email, phone, cnic, password_hash, role, created_at, updated_at"

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository instantiates the repository.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	const query = `
        INSERT INTO staff_members (username, email, phone, cnic, password_hash, role)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		staff.Username,
		staff.Email,
		staff.Phone,
		staff.CNIC,
		staff.PasswordHash,
		staff.Role,
	).Scan(&staff.ID, &staff.CreatedAt, &staff.UpdatedAt)
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	query := fmt.Sprintf("SELECT %s FROM staff_members WHERE id=$1", staffColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	query := fmt.Sprintf("SELECT %s FROM staff_members WHERE email=$1", staffColumns)
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *staffRepository) List(ctx context.Context) ([]domain.StaffMember, error) {
	query := fmt.Sprintf("SELECT %s FROM staff_members ORDER BY created_at DESC", staffColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.StaffMember
	for rows.Next() {
		var staff domain.StaffMember
		if err := rows.Scan(
			&staff.ID,
			&staff.Username,
			&staff.Email,
			&staff.Phone,
			&staff.CNIC,
			&staff.PasswordHash,
			&staff.Role,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

// UpdateFields applies a partial update of the given column/value pairs and
// returns the resulting record. Returns pgx.ErrNoRows for an unknown id.
func (r *staffRepository) UpdateFields(ctx context.Context, id string, fields map[string]string) (*domain.StaffMember, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	args := []any{}
	sets := []string{}
	for _, column := range []string{"username", "email", "phone", "cnic", "password_hash", "role"} {
		value, ok := fields[column]
		if !ok {
			continue
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE staff_members SET %s, updated_at=NOW() WHERE id=$%d RETURNING %s",
		strings.Join(sets, ", "), len(args), staffColumns,
	)
	return r.scanOne(r.pool.QueryRow(ctx, query, args...))
}

func (r *staffRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM staff_members WHERE id=$1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// FindConflict returns the first unique column ("email", "phone", "cnic")
// whose value is already taken, or "" when no record matches.
func (r *staffRepository) FindConflict(ctx context.Context, q ConflictQuery) (string, error) {
	args := []any{}
	clauses := []string{}

	if q.Email != nil {
		args = append(args, *q.Email)
		clauses = append(clauses, fmt.Sprintf("email=$%d", len(args)))
	}
	if q.Phone != nil {
		args = append(args, *q.Phone)
		clauses = append(clauses, fmt.Sprintf("phone=$%d", len(args)))
	}
	if q.CNIC != nil {
		args = append(args, *q.CNIC)
		clauses = append(clauses, fmt.Sprintf("cnic=$%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}

	query := fmt.Sprintf("SELECT email, phone, cnic FROM staff_members WHERE (%s)", strings.Join(clauses, " OR "))
	if q.ExcludeID != "" {
		args = append(args, q.ExcludeID)
		query += fmt.Sprintf(" AND id<>$%d", len(args))
	}
	query += " LIMIT 1"

	var email, phone, cnic string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&email, &phone, &cnic); err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}

	switch {
	case q.Email != nil && email == *q.Email:
		return "email", nil
	case q.Phone != nil && phone == *q.Phone:
		return "phone", nil
	default:
		return "cnic", nil
	}
}

func (r *staffRepository) CountByRole(ctx context.Context, role, excludeID string) (int, error) {
	query := "SELECT COUNT(*) FROM staff_members WHERE role=$1"
	args := []any{role}
	if excludeID != "" {
		args = append(args, excludeID)
		query += " AND id<>$2"
	}

	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *staffRepository) scanOne(row pgx.Row) (*domain.StaffMember, error) {
	var staff domain.StaffMember
	if err := row.Scan(
		&staff.ID,
		&staff.Username,
		&staff.Email,
		&staff.Phone,
		&staff.CNIC,
		&staff.PasswordHash,
		&staff.Role,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &staff, nil
}
