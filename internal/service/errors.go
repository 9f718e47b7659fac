package service

import (
	"errors"
	"fmt"

	"github.com/ridwanfathin/gst-invoice-service/internal/repository"
)

// ErrInvalidLogo is returned when an uploaded logo cannot be decoded
var ErrInvalidLogo = errors.New("logo is not a supported image")

// ErrLogoTooLarge is returned when an uploaded logo exceeds the size limit
var ErrLogoTooLarge = errors.New("logo exceeds size limit")

// ServiceError represents an error in a service operation
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrProfileNotFound)
}
