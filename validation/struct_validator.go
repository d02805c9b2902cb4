package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/kbukum/arraygate/errors"
)

// FieldError is one entry of the "fields" detail of a validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type engine struct {
	validate *validator.Validate
	trans    ut.Translator
}

var shared = sync.OnceValue(newEngine)

func newEngine() *engine {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Name fields as they appear on the wire.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	// The stock English messages only fail to register on duplicate tags.
	_ = entranslations.RegisterDefaultTranslations(v, trans)
	return &engine{validate: v, trans: trans}
}

// Validate checks s against its `validate` tags. Failures come back as one
// INVALID_INPUT *errors.AppError whose message joins every field's
// complaint and whose "fields" detail lists them.
func Validate(s any) error {
	e := shared()
	err := e.validate.Struct(s)
	if err == nil {
		return nil
	}
	failed, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Validation("request could not be validated").WithCause(err)
	}

	fields := make([]FieldError, len(failed))
	msgs := make([]string, len(failed))
	for i, fe := range failed {
		fields[i] = FieldError{Field: fe.Field(), Message: fe.Translate(e.trans)}
		msgs[i] = fields[i].Message
	}
	return errors.Validation(strings.Join(msgs, "; ")).WithDetail("fields", fields)
}
