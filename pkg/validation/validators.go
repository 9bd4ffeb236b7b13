package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Company handles appear in URLs and are compared verbatim against token identities
	handleRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{1,63}$`)

	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{1,64}$`)

	// Letters, spaces and common punctuation: . ' - /
	nameRegex = regexp.MustCompile(`^[\p{L} .'/-]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("handle", Handle)
	_ = v.RegisterValidation("username", Username)
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

func Handle(fl validator.FieldLevel) bool {
	return handleRegex.MatchString(fl.Field().String())
}

func Username(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Supplementary planes are mostly emoji/symbols
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
