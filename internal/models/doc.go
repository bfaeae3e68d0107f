// Package models defines the core domain models for SplitSense.
//
// # Models
//
//   - User: a member of the fixed roster created at bootstrap
//   - Group: an ordered set of users who share expenses
//   - Expense: a single payment with its per-participant split allocation
//   - Split: one participant's share of an expense
//   - Snapshot: the full {users, groups, expenses} state handed to persistence
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed with ID strings so a
// snapshot can be copied and persisted without walking object graphs.
// 2. **Append-only history**: expenses and groups are appended; derived views
// are recomputed from the full expense list on demand.
// 3. **Split shares are stored**: the split allocation is computed once at
// creation time and persisted with the expense, never recomputed on read.
package models
