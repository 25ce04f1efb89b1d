package mysql

import (
	"errors"

	"gorm.io/gorm"

	"loan-management-system/internal/domain/errs"
)

// translate maps gorm sentinels onto domain errors. Anything else is an
// infrastructure failure.
func translate(err, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case notFound != nil && errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case duplicate != nil && errors.Is(err, gorm.ErrDuplicatedKey):
		return duplicate
	default:
		return errs.Infra(err)
	}
}
