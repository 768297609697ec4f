package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ParseError turns a binding or validation error into field-keyed, human-readable messages.
// Keys are the JSON field names when the validator was set up with JSONTagName.
func ParseError(err error) map[string]string {
	fields := make(map[string]string)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if _, seen := fields[fe.Field()]; seen {
				continue
			}
			fields[fe.Field()] = Message(fe)
		}
		return fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fields[typeErr.Field] = fmt.Sprintf("%s has the wrong type, expected %s", typeErr.Field, typeErr.Type.String())
		return fields
	}

	if err != nil {
		fields["error"] = err.Error()
	}
	return fields
}

// Message renders one failed rule.
func Message(fe validator.FieldError) string {
	name := humanize(fe.Field())
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.Join(strings.Fields(fe.Param()), ", "))
	case "uuid", "uuid4", "uuid_rfc4122":
		return name + " must be a valid id"
	case "url", "uri":
		return name + " must be a valid URL"
	case "email":
		return name + " must be a valid email address"
	case "clock":
		return name + " must be a time in HH:MM format"
	case "iso_datetime":
		return name + " must be an ISO 8601 date-time"
	case "skill_category":
		return name + " is not a known category"
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", name, humanize(fe.Param()))
	}
	return fmt.Sprintf("%s failed the '%s' rule", name, fe.Tag())
}

// JSONTagName makes validation errors report the JSON field name.
func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
