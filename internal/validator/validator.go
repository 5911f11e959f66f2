package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// trans is the English translator for validation errors.
	trans     ut.Translator
	setupOnce sync.Once
)

// Setup registers English translations and JSON field names on Gin's binding engine.
// Safe to call more than once; only the first call has an effect.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*govalidator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("maxbytes", maxBytes)
		_ = v.RegisterTranslation("maxbytes", trans,
			func(tr ut.Translator) error {
				return tr.Add("maxbytes", "{0} must be at most {1} bytes long", true)
			},
			func(tr ut.Translator, fe govalidator.FieldError) string {
				msg, _ := tr.T("maxbytes", fe.Field(), fe.Param())
				return msg
			},
		)
	})
}

// maxBytes bounds the encoded length of a string. The builtin max counts runes,
// and bcrypt rejects passwords over 72 bytes.
func maxBytes(fl govalidator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

// TranslateErrors turns a binding error into a map of JSON field name to message.
// Anything other than a validation error (malformed JSON, wrong types) is
// reported under "body".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	fields["body"] = err.Error()
	return fields
}

// Struct validates a value built outside an HTTP request against its binding tags,
// using the same engine and rules as Bind.
func Struct(v interface{}) map[string]string {
	Setup()
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// Bind binds and validates the JSON request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
