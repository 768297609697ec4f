// Package validation holds the structural rules for every writable entity.
// Rules never consult the database; existence and uniqueness are checked by the owning feature.
package validation

import (
	"regexp"
	"slices"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/DhavalSuthar-24/skillswap/pkg/validator"
)

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var validate = newValidator()

func init() {
	// gin binds request bodies with its own engine; give it the same rules and field names.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := Register(v); err != nil {
			panic(err)
		}
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// Register installs the custom rules and JSON field naming on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(pkgvalidator.JSONTagName)
	if err := v.RegisterValidation("clock", isClock); err != nil {
		return err
	}
	if err := v.RegisterValidation("iso_datetime", isISODateTime); err != nil {
		return err
	}
	return v.RegisterValidation("skill_category", isSkillCategory)
}

// Validate checks input against its schema. It returns nil when the input passes,
// otherwise one message per offending field keyed by the JSON field name.
func Validate(input interface{}) map[string]string {
	if err := validate.Struct(input); err != nil {
		return pkgvalidator.ParseError(err)
	}
	return nil
}

// ParseDateTime reads a value accepted by the iso_datetime rule.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// IsSkillCategory reports whether name is one of SkillCategories.
func IsSkillCategory(name string) bool {
	return slices.Contains(SkillCategories, name)
}

func isClock(fl validator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}

func isISODateTime(fl validator.FieldLevel) bool {
	_, err := ParseDateTime(fl.Field().String())
	return err == nil
}

func isSkillCategory(fl validator.FieldLevel) bool {
	return IsSkillCategory(fl.Field().String())
}
