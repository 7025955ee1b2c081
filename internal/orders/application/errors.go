package application

import (
	"errors"

	"ordersvc/internal/orders/domain"
	"ordersvc/internal/orders/ports"
)

// mapStorageError folds storage failures into the single validation error
// kind, keeping the original message. Not-found passes through untouched so
// adapters can translate it to 404.
func mapStorageError(err error) error {
	if err == nil || errors.Is(err, ports.ErrNotFound) {
		return err
	}
	var dve *domain.DataValidationError
	if errors.As(err, &dve) {
		return err
	}
	return domain.NewDataValidationError("storage failure: %s", err.Error())
}
