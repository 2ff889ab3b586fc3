package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventosia/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

// Create inserts the user and assigns its role in user_role inside a
// single transaction.
func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (name, last_name, email, email_verified, password, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id_user, created_at
	`
	err = tx.QueryRowContext(ctx, query, u.Name, u.LastName, u.Email, u.EmailVerified, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO user_role (user_id, role_id) VALUES ($1, $2)`, u.ID, int(u.Role)); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := userSelect + ` WHERE u.id_user = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := userSelect + ` WHERE u.email = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

func (r *userRepository) GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT u.id_user, u.name, u.last_name, u.email, u.email_verified, u.password, u.created_at, ur.role_id
		FROM users u
		LEFT JOIN user_role ur ON u.id_user = ur.user_id
		WHERE u.email = $1
	`
	u := &domain.User{}
	var role sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.LastName, &u.Email, &u.EmailVerified, &u.PasswordHash, &u.CreatedAt, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.Role = domain.Role(role.Int64)
	return u, nil
}

const userSelect = `
	SELECT u.id_user, u.name, u.last_name, u.email, u.email_verified, u.created_at, ur.role_id
	FROM users u
	LEFT JOIN user_role ur ON u.id_user = ur.user_id`

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var role sql.NullInt64
	err := row.Scan(&u.ID, &u.Name, &u.LastName, &u.Email, &u.EmailVerified, &u.CreatedAt, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	u.Role = domain.Role(role.Int64)
	return u, nil
}
