package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/splitsense/internal/models"
)

func saveUsers(ctx context.Context, q querier, users []models.User) error {
	for i, u := range users {
		_, err := q.ExecContext(ctx,
			"INSERT INTO users (id, position, name, email, avatar) VALUES (?, ?, ?, ?, ?)",
			u.ID, i, u.Name, u.Email, u.Avatar,
		)
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
		}
	}
	return nil
}

func loadUsers(ctx context.Context, q querier) ([]models.User, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name, email, avatar FROM users ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Avatar); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
