package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indica que o registro não existe.
	ErrNotFound = errors.New("not found")

	// ErrEmailAlreadyExists indica violação da unicidade de email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidLayoutValue indica valor de layout fora de {1,2,3}.
	ErrInvalidLayoutValue = errors.New("invalid layout value")
)

// NotFoundError carries the id that was looked up. errors.Is(err, ErrNotFound)
// holds for it.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("lead %d not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
