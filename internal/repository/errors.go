// Package repository contains the MySQL data access layer.  Sentinel errors
// defined here let the service layer distinguish missing rows and constraint
// violations from other database failures without depending on driver
// types.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// ErrConflict is returned when a write cannot be performed because of a
// conflicting row, such as an overlapping booking.
var ErrConflict = errors.New("conflict")

// ErrDuplicate is returned when an insert or update violates a unique index
// other than users.email.
var ErrDuplicate = errors.New("duplicate key")

// mysqlDuplicateEntry is the server error number for a unique index violation.
const mysqlDuplicateEntry = 1062

// isDuplicateKey reports whether err is a MySQL unique-constraint violation.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(strings.ToLower(err.Error()), "1062")
}
