// Package bind decodes multipart forms and query strings into tagged structs
// and validates them with go-playground/validator
package bind

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator is the validate instance with its english translator
type Validator struct {
	*validator.Validate
	trans ut.Translator
}

// messages overrides the stock english text per tag, {0} is the field
var messages = map[string]string{
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"basename": "{0} must be a plain file name without path separators",
}

// Get returns the shared validator, built on first use
var Get = sync.OnceValue(func() *Validator {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(formName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	_ = v.RegisterValidation("basename", basename)

	for tag, text := range messages {
		_ = v.RegisterTranslation(tag, trans,
			func(t ut.Translator) error { return t.Add(tag, text, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field(), fe.Param())
				return msg
			},
		)
	}
	return &Validator{Validate: v, trans: trans}
})

// basename accepts a name usable as a file name prefix: no separators, not . or ..
func basename(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" || s == "." || s == ".." {
		return false
	}
	return !strings.ContainsAny(s, `/\`+"\x00")
}

// FirstViolation returns the offending field and its message for a validator error
func FirstViolation(err error) (field, message string) {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}

// formName is the key a field binds from: form tag, then json tag, then the field name
func formName(sf reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		tag, _, _ := strings.Cut(sf.Tag.Get(key), ",")
		if tag != "" {
			return tag
		}
	}
	return sf.Name
}
