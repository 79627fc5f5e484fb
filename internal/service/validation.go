package service

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// fieldMessages maps "field.tag" to the message shown next to the input.
var fieldMessages = map[string]string{
	"name.required":      "Full name is required",
	"phone.required":     "Phone number is required",
	"phone.phone10":      "Phone number must be 10 digits",
	"age.required":       "Age is required",
	"age.gt":             "Age must be positive",
	"age.lte":            "Age must be less than 120",
	"gender.required":    "Gender is required",
	"gender.oneof":       "Invalid gender",
	"username.required":  "Username is required",
	"username.min":       "Username must be at least 4 characters",
	"password.required":  "Password is required",
	"password.min":       "Password must be at least 6 characters",
	"email.required":     "Email is required",
	"email.email":        "Invalid email address",
	"role.required":      "Role is required",
	"role.oneof":         "Invalid role",
	"diagnosis.required": "Diagnosis is required",
	"symptoms.min":       "At least one symptom is required",
	"dosage.required":    "Dosage is required",
	"frequency.required": "Frequency is required",
	"duration.required":  "Duration is required",
	"status.oneof":       "Invalid status",
}

// NewValidator returns a validator that reports json field names and knows
// the phone10 rule.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// FieldErrors translates validator errors into field -> message. Keys are
// prefixed with prefix when it is not empty. Non-validation errors yield nil.
func FieldErrors(err error, prefix string) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field()
		if prefix != "" {
			key = prefix + "." + key
		}
		if _, seen := out[key]; seen {
			continue
		}
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out[key] = msg
	}
	return out
}

func mergeErrors(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
