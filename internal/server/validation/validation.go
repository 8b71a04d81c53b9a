// Package validation holds the request validation rules shared by the HTTP
// API and the admin seeding command.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/go-playground/validator/v10"
)

// TagName is the struct tag the rules are read from, matching gin's binding.
const TagName = "binding"

// BcryptTag limits a string to the bytes bcrypt can hash.
const BcryptTag = "bcrypt"

// Register installs the json field names and the custom rules on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)
	return v.RegisterValidation(BcryptTag, func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= auth.MaxPasswordBytes
	})
}

// New returns a standalone validator reading binding tags.
func New() (*validator.Validate, error) {
	v := validator.New()
	v.SetTagName(TagName)
	if err := Register(v); err != nil {
		return nil, err
	}
	return v, nil
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// Issue describes one field that failed validation.
type Issue struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Issues converts a validation or decoding error into field-level issues.
func Issues(err error) []Issue {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]Issue, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, Issue{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: message(fe),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []Issue{{
			Field:   typeErr.Field,
			Rule:    "type",
			Message: fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type),
		}}
	}

	return []Issue{{Rule: "json", Message: "malformed JSON body"}}
}

// Messages returns the human readable part of each issue.
func Messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Message
	}
	return out
}

func message(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " is required"
	case "email":
		return f + " must be a valid email"
	case "uuid":
		return f + " must be a valid UUID"
	case BcryptTag:
		return fmt.Sprintf("%s is too long, max %d bytes", f, auth.MaxPasswordBytes)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s is too short, min %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", f, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s is too long, max %s characters", f, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", f, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", f, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", f, fe.Tag())
	}
}
