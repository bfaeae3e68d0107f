package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mmynk/splitsense/internal/models"
)

func saveExpenses(ctx context.Context, q querier, expenses []models.Expense) error {
	for i, e := range expenses {
		_, err := q.ExecContext(ctx,
			`INSERT INTO expenses (id, position, description, amount, paid_by, group_id, date, date_nanos, category)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, e.Description, e.Amount, e.PaidBy, e.GroupID, e.Date.Unix(), e.Date.Nanosecond(), e.Category,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense %s: %w", e.ID, err)
		}

		for j, s := range e.Splits {
			_, err = q.ExecContext(ctx,
				"INSERT INTO expense_splits (expense_id, user_id, amount, position) VALUES (?, ?, ?, ?)",
				e.ID, s.UserID, s.Amount, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert split: %w", err)
			}
		}
	}
	return nil
}

func loadExpenses(ctx context.Context, q querier) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		"SELECT id, description, amount, paid_by, group_id, date, date_nanos, category FROM expenses ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	index := make(map[string]int)
	for rows.Next() {
		var (
			e           models.Expense
			date, nanos int64
		)
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.PaidBy, &e.GroupID, &date, &nanos, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Date = time.Unix(date, nanos).UTC()
		e.Splits = []models.Split{}
		index[e.ID] = len(expenses)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	splitRows, err := q.QueryContext(ctx,
		"SELECT expense_id, user_id, amount FROM expense_splits ORDER BY expense_id, position",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var (
			expenseID string
			s         models.Split
		)
		if err := splitRows.Scan(&expenseID, &s.UserID, &s.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Splits = append(expenses[i].Splits, s)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return expenses, nil
}
