package shared

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// IsUniqueConstraintError recognises duplicate key failures from both the
// postgres and sqlite drivers.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "unique constraint")
}
