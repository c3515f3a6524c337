package user

import (
	"context"
	"database/sql"
	"errors"

	"gridiron-be/internal/auth"
	"gridiron-be/internal/db"
	"gridiron-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.Conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`,
		email,
	).Scan(&exists)
	return exists, err
}

// Create inserts the user and its role set. Run it inside a transaction so
// a failed role insert does not leave a user without roles.
func (r *repository) Create(ctx context.Context, u *User) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateUser"),
		zap.String("email", u.Email),
	)
	conn := db.Conn(ctx, r.db)

	err := conn.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.FirstName, u.LastName, u.Email, u.Password,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return ErrAccountExists
		}
		log.Error("db: failed to insert user", zap.Error(err))
		return err
	}

	for _, role := range u.Roles {
		if _, err := conn.ExecContext(ctx,
			`INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`,
			u.ID, string(role),
		); err != nil {
			log.Error("db: failed to insert user role", zap.String("role", string(role)), zap.Error(err))
			return err
		}
	}

	return nil
}

// FindByEmail returns nil, nil when no account matches.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	conn := db.Conn(ctx, r.db)

	var u User
	err := conn.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, password, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx,
		`SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`,
		u.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		if role, ok := auth.ParseRole(name); ok {
			u.Roles = append(u.Roles, role)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &u, nil
}
