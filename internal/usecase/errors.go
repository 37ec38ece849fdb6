package usecase

import "errors"

// TechnicalError embrulha falhas de infraestrutura. A mensagem é genérica;
// o erro original só vai para o log.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func databaseError(message string, err error) error {
	return &TechnicalError{Code: "DATABASE_ERROR", Message: message, Err: err}
}
