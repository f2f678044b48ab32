package util

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"todolists/internal/core/domain"
)

const (
	TitleMinLength = 1
	TitleMaxLength = 100
)

var (
	ErrTitleNotUnique = errors.New("title must be unique")
	ErrTitleLength    = errors.New("title must be between 1 and 100 characters")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// titleRule counts runes, not bytes.
const titleRule = "min=1,max=100"

// ValidateListTitle checks uniqueness before length. The uniqueness check is
// an exact, case-sensitive match.
func ValidateListTitle(title string, lists []domain.List) error {
	for _, list := range lists {
		if list.Title == title {
			return ErrTitleNotUnique
		}
	}

	return validateTitleLength(title)
}

func ValidateTodoTitle(title string) error {
	return validateTitleLength(title)
}

func validateTitleLength(title string) error {
	if err := validate.Var(title, titleRule); err != nil {
		var validationErrors validator.ValidationErrors

		if errors.As(err, &validationErrors) {
			return ErrTitleLength
		}

		return err
	}

	return nil
}

func TrimTitle(title string) string {
	return strings.TrimSpace(title)
}
