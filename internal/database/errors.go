package database

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY
const mysqlDuplicateEntry = 1062

// IsUniqueViolation reports whether err came from a unique index rejecting a row.
// TranslateError covers most dialects; the raw MySQL check catches statements
// issued outside gorm's translator (Exec with raw SQL).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

// IsNotFound wraps gorm.ErrRecordNotFound for callers that should not import gorm
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
