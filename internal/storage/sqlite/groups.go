package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/splitsense/internal/models"
)

func saveGroups(ctx context.Context, q querier, groups []models.Group) error {
	for i, g := range groups {
		_, err := q.ExecContext(ctx,
			"INSERT INTO groups (id, position, name, type, created_at, created_at_nanos) VALUES (?, ?, ?, ?, ?, ?)",
			g.ID, i, g.Name, g.Type, g.CreatedAt.Unix(), g.CreatedAt.Nanosecond(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert group %s: %w", g.ID, err)
		}

		for j, member := range g.Members {
			_, err = q.ExecContext(ctx,
				"INSERT INTO group_members (group_id, user_id, position) VALUES (?, ?, ?)",
				g.ID, member, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert group member: %w", err)
			}
		}
	}
	return nil
}

func loadGroups(ctx context.Context, q querier) ([]models.Group, error) {
	rows, err := q.QueryContext(ctx, "SELECT id, name, type, created_at, created_at_nanos FROM groups ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	groups := []models.Group{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			g                models.Group
			createdAt, nanos int64
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Type, &createdAt, &nanos); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		g.CreatedAt = time.Unix(createdAt, nanos).UTC()
		g.Members = []string{}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	memberRows, err := q.QueryContext(ctx,
		"SELECT group_id, user_id FROM group_members ORDER BY group_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query group members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var groupID, userID string
		if err := memberRows.Scan(&groupID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		if i, ok := index[groupID]; ok {
			groups[i].Members = append(groups[i].Members, userID)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return groups, nil
}
