package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateEntry checks for a MySQL/MariaDB unique key violation.
// Favorite toggles and review/vote uniqueness lean on the constraint
// instead of a racy read-then-write existence check.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// isForeignKeyConstraintError checks for a foreign key failure so it can
// be translated into a validation response instead of a generic 500.
func isForeignKeyConstraintError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1452
}
