package domain

import (
	"errors"
	"testing"

	"railway/internal/domain/models"
)

func TestValidatePlacement_Bounds(t *testing.T) {
	train := models.Train{CargoNum: 9, PlaceInCargo: 50}

	cases := []struct {
		name       string
		cargo      int
		seat       int
		wantFields []string
	}{
		{"lowest corner", 1, 1, nil},
		{"highest corner", 9, 50, nil},
		{"seat zero", 1, 0, []string{"seat"}},
		{"seat past capacity", 1, 51, []string{"seat"}},
		{"cargo zero", 0, 4, []string{"cargo"}},
		{"cargo past capacity", 10, 4, []string{"cargo"}},
		{"both out of range", 99, 99, []string{"seat", "cargo"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePlacement(tc.cargo, tc.seat, train)
			if len(tc.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			var fields FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("expected FieldErrors, got %T (%v)", err, err)
			}
			if len(fields) != len(tc.wantFields) {
				t.Fatalf("expected %d field errors, got %v", len(tc.wantFields), fields)
			}
			for _, f := range tc.wantFields {
				if _, ok := fields[f]; !ok {
					t.Fatalf("missing %q in %v", f, fields)
				}
			}
			if !IsValidation(err) {
				t.Fatalf("IsValidation should hold for %v", err)
			}
		})
	}
}

func TestValidateSeat_Message(t *testing.T) {
	err := ValidateSeat(99, 50, NewValidationError)
	var v ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if v.Field != "seat" {
		t.Fatalf("field = %q", v.Field)
	}
	if v.Msg != "seat must be in the range [1, 50], not 99" {
		t.Fatalf("msg = %q", v.Msg)
	}
}

func TestValidateCargo_UsesErrorConstructor(t *testing.T) {
	type custom struct{ error }
	called := ""
	err := ValidateCargo(0, 3, func(field, msg string) error {
		called = field
		return custom{errors.New(msg)}
	})
	if called != "cargo" {
		t.Fatalf("constructor called with %q", called)
	}
	if _, ok := err.(custom); !ok {
		t.Fatalf("expected constructor's error type, got %T", err)
	}
}

func TestTicketError_Fields(t *testing.T) {
	te := TicketError{Index: 1, Err: ConflictError{Resource: "ticket", Field: "seat", Msg: "taken"}}
	if got := te.Fields()["seat"]; got != "taken" {
		t.Fatalf("seat field = %q", got)
	}
	te = TicketError{Index: 0, Err: FieldErrors{"cargo": "bad"}}
	if got := te.Fields()["cargo"]; got != "bad" {
		t.Fatalf("cargo field = %q", got)
	}
}
