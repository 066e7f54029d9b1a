package repositories

import (
	"fmt"
	"strconv"

	intdb "backoffice/internal/db"
)

const folderCounter = "folder_no"

// FolderRepository allocates folder numbers from a durable counter row.
// The increment must run inside the same transaction that inserts the
// booking so two concurrent approvals can never share a number, and
// numbers are never reused after deletions.
type FolderRepository struct{}

// Next atomically increments the counter and returns the new value.
// LAST_INSERT_ID(expr) makes the incremented value readable from the
// update result without a second round trip.
func (FolderRepository) Next(q intdb.DBTX) (string, error) {
	res, err := q.Exec(`UPDATE counters SET value = LAST_INSERT_ID(value + 1) WHERE name = ?`, folderCounter)
	if err != nil {
		return "", fmt.Errorf("increment folder counter: %w", err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	if n <= 0 {
		return "", fmt.Errorf("folder counter row missing; schema not initialized")
	}
	return strconv.FormatInt(n, 10), nil
}
