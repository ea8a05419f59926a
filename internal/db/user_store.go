package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/placedir/backend/internal/models"
)

const userColumns = `id, name, password, created_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Password, &u.CreatedAt)
	return u, err
}

func (s *Store) InsertUser(ctx context.Context, u models.User) (models.User, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO users (id, name, password) VALUES ($1, $2, $3)
		RETURNING `+userColumns, u.ID, u.Name, u.Password)
	return scanUser(row)
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *Store) GetUserByName(ctx context.Context, name string) (models.User, error) {
	row := s.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE name = $1`, name)
	return scanUser(row)
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, id string, name, password *string) (models.User, error) {
	var sets []string
	var args []any
	if name != nil {
		args = append(args, *name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if password != nil {
		args = append(args, *password)
		sets = append(sets, fmt.Sprintf("password = $%d", len(args)))
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)
	row := s.Pool.QueryRow(ctx, query, args...)
	return scanUser(row)
}

func (s *Store) DeleteUser(ctx context.Context, id string) (models.User, error) {
	row := s.Pool.QueryRow(ctx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
	return scanUser(row)
}
