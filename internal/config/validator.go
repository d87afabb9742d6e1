package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// ValidationError maps YAML keys to human-readable problems.
type ValidationError map[string]string

// Error implements the error interface with a stable, sorted message.
func (ve ValidationError) Error() string {
	if len(ve) == 0 {
		return "invalid settings"
	}

	keys := make([]string, 0, len(ve))
	for k := range ve {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, ve[k]))
	}

	return "invalid settings: " + strings.Join(parts, "; ")
}

// settingsValidator wraps validator v10 with English messages and YAML field names.
type settingsValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var (
	//nolint:gochecknoglobals // Built once, read-only afterwards.
	sharedValidator *settingsValidator
	//nolint:gochecknoglobals // Guards sharedValidator.
	validatorOnce sync.Once
)

// structValidator returns the lazily built validator.
func structValidator() *settingsValidator {
	validatorOnce.Do(func() {
		sharedValidator = newSettingsValidator()
	})

	return sharedValidator
}

func newSettingsValidator() *settingsValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	//nolint:errcheck // Registration only fails for empty tags.
	validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		return validLogLevel(fl.Field().String())
	})

	enLang := en.New()
	translator, _ := ut.New(enLang, enLang).GetTranslator("en")

	//nolint:errcheck // Default English translations are static.
	enTranslations.RegisterDefaultTranslations(validate, translator)

	//nolint:errcheck // Static translation text.
	validate.RegisterTranslation("loglevel", translator,
		func(t ut.Translator) error {
			return t.Add("loglevel", "{0} must be one of debug, info, warn, error, fatal", false)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(fe.Tag(), fe.Field())

			return msg
		})

	return &settingsValidator{
		validate:   validate,
		translator: translator,
	}
}

// Validate checks cfg against its struct tags.
func (v *settingsValidator) Validate(cfg *Config) error {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate settings: %w", err)
	}

	result := make(ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		result[fe.Field()] = fe.Translate(v.translator)
	}

	return result
}
