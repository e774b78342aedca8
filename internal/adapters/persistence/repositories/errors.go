package repositories

import (
	"errors"

	"mylibrary/internal/core/domain"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL server error numbers
const (
	mysqlErrDuplicateEntry = 1062
	mysqlErrLockWait       = 1205
	mysqlErrFKViolation    = 1452
)

// translateError maps storage errors to the domain taxonomy. Duplicate keys
// and foreign key violations become ErrDataIntegrity (409); a lock wait
// timeout becomes ErrLockWaitTimeout so callers can retry. notFound is the
// per-store not-found sentinel substituted for gorm.ErrRecordNotFound.
func translateError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrDataIntegrity
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrDuplicateEntry, mysqlErrFKViolation:
			return domain.ErrDataIntegrity
		case mysqlErrLockWait:
			return domain.ErrLockWaitTimeout
		}
	}

	return err
}
