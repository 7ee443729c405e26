package domain

import (
	"fmt"

	"railway/internal/domain/models"
)

// ValidateSeat checks 1 <= seat <= placeInCargo.
func ValidateSeat(seat, placeInCargo int, newErr ErrorFunc) error {
	return validateRange("seat", seat, placeInCargo, newErr)
}

// ValidateCargo checks 1 <= cargo <= cargoNum.
func ValidateCargo(cargo, cargoNum int, newErr ErrorFunc) error {
	return validateRange("cargo", cargo, cargoNum, newErr)
}

func validateRange(field string, value, upper int, newErr ErrorFunc) error {
	if value >= 1 && value <= upper {
		return nil
	}
	if newErr == nil {
		newErr = NewValidationError
	}
	return newErr(field, fmt.Sprintf("%s must be in the range [1, %d], not %d", field, upper, value))
}

// ValidatePlacement runs both checks against the train and reports every
// failing field at once.
func ValidatePlacement(cargo, seat int, train models.Train) error {
	errs := FieldErrors{}
	errs.Add(ValidateSeat(seat, train.PlaceInCargo, NewValidationError))
	errs.Add(ValidateCargo(cargo, train.CargoNum, NewValidationError))
	return errs.OrNil()
}
