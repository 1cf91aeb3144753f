package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// translate maps gorm's not-found to the given domain error
func translate(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

// required rejects blank values of a mandatory field
func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid(field + " is required")
	}
	return nil
}

// firstErr returns the first non-nil error
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
