package coerce

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Email trims v and reports whether it is a well formed address.
func Email(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, validate.Var(v, "required,email") == nil
}
