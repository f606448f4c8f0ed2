package core

import (
	"reflect"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	dateTag  = "date"
	dateText = "must be a valid date in YYYY-MM-DD format"

	clockTimeTag  = "clocktime"
	clockTimeText = "must be a valid time in HH:mm:ss format"

	dayOfWeekTag  = "dayofweek"
	dayOfWeekText = "must be a day of week between 0 (Sunday) and 6 (Saturday)"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	// Translator is the app-wide translator, set by InitValidators.
	Translator ut.Translator
)

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	Translator = translator
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(dateTag, dateValidation)
	RegisterCustomTranslation(validate, translator, dateTag, dateText)

	_ = validate.RegisterValidation(clockTimeTag, clockTimeValidation)
	RegisterCustomTranslation(validate, translator, clockTimeTag, clockTimeText)

	_ = validate.RegisterValidation(dayOfWeekTag, dayOfWeekValidation)
	RegisterCustomTranslation(validate, translator, dayOfWeekTag, dayOfWeekText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// dateValidation only allows zero-padded ISO "YYYY-MM-DD" date strings.
// The fixed width keeps lexicographic comparison equal to chronological order.
func dateValidation(fl validator.FieldLevel) bool {
	return ValidDate(fl.Field().String())
}

// clockTimeValidation only allows zero-padded 24h "HH:mm:ss" time strings.
func clockTimeValidation(fl validator.FieldLevel) bool {
	return ValidClockTime(fl.Field().String())
}

// dayOfWeekValidation only allows 0 (Sunday) through 6 (Saturday).
func dayOfWeekValidation(fl validator.FieldLevel) bool {
	day := fl.Field().Int()
	return day >= 0 && day <= 6
}

// ValidDate reports whether `s` is a zero-padded ISO "YYYY-MM-DD" date string.
func ValidDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidClockTime reports whether `s` is a zero-padded 24h "HH:mm:ss" time string.
func ValidClockTime(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
