package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var (
	ErrEmptyBody    = errors.New("request body cannot be empty")
	ErrBodyTooLarge = errors.New("request body is too large")
)

// DecodeJSONBody reads exactly one JSON value into dest. Unknown fields are rejected so a
// client cannot smuggle server-computed values such as totals or usage counts.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes+1))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dest); err != nil {
		var syntaxErr *json.SyntaxError

		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.Is(err, io.ErrUnexpectedEOF), errors.As(err, &syntaxErr):
			if dec.InputOffset() > maxBodyBytes {
				return ErrBodyTooLarge
			}

			return fmt.Errorf("invalid JSON format: %w", err)
		default:
			return fmt.Errorf("invalid JSON format: %w", err)
		}
	}

	if dec.More() {
		return errors.New("invalid JSON format: body must hold a single object")
	}

	return nil
}

func ValidateStruct(validate *validator.Validate, data any) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return fmt.Errorf("validation error: %w", validationErrs)
		}

		return fmt.Errorf("unexpected validation error: %w", err)
	}

	return nil
}
