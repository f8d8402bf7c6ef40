package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khata/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps driver errors onto domain errors. Unknown errors are
// wrapped with op.
func translateError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated), isForeignKeyMessage(err):
		return shared.NewDomainError(shared.ErrForeignKeyViolation.Code,
			fmt.Sprintf("%s: record is still referenced", op))
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.NewDomainError(shared.ErrAlreadyExists.Code,
			fmt.Sprintf("%s: record already exists", op))
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isForeignKeyMessage catches drivers that do not translate constraint errors
func isForeignKeyMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint") || strings.Contains(msg, "sqlstate 23503")
}
