package validation

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	apperrors "moviereview/internal/errors"
)

// ReleaseDateTag validates optional release dates in YYYY-MM-DD or RFC3339 form.
const ReleaseDateTag = "releasedate"

// WholeNumberTag accepts integers and floats without a fractional part, so a
// JSON 3.0 counts as 3.
const WholeNumberTag = "wholenumber"

// Field specific wording, keyed by "<json field>.<tag>".
var messageOverrides = map[string]string{
	"email.email":                      apperrors.MsgInvalidEmail,
	"password.min":                     apperrors.MsgPasswordMinLength,
	"password.alphanum":                apperrors.MsgPasswordAlphanumeric,
	"rating." + WholeNumberTag:         apperrors.MsgRatingRange,
	"rating.min":                       apperrors.MsgRatingRange,
	"rating.max":                       apperrors.MsgRatingRange,
	"comment_general.required_without": apperrors.MsgReviewCommentRequired,
	"comment_general.max":              apperrors.MsgReviewMaxLength,
	"comment_spoiler.max":              apperrors.MsgReviewMaxLength,
	"release_date." + ReleaseDateTag:   apperrors.MsgInvalidDate,
}

// Validator implements echo.Validator on top of go-playground/validator.
// Failures are returned as *errors.ValidationError with JSON field names.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New builds a Validator with English messages and the project's custom rules.
func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(ReleaseDateTag, validReleaseDate); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation(WholeNumberTag, wholeNumber); err != nil {
		return nil, err
	}

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}
	for tag, text := range map[string]string{
		ReleaseDateTag: "{0} must be a valid date",
		WholeNumberTag: "{0} must be an integer",
	} {
		if err := registerTranslation(v, trans, tag, text); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: v, trans: trans}, nil
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, text string) error {
	return v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field())
			return msg
		},
	)
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &apperrors.ValidationError{Fields: make([]apperrors.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, apperrors.FieldError{
			Field:   fe.Field(),
			Message: v.message(fe),
		})
	}
	return out
}

func (v *Validator) message(fe validator.FieldError) string {
	if msg, ok := messageOverrides[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if fe.Tag() == "required" {
		return apperrors.MsgRequired(fe.Field())
	}
	return fe.Translate(v.trans)
}

// BindError converts a failed echo Bind into a ValidationError. JSON type
// mismatches become a detail on the offending field.
func BindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		if typeErr.Field == "rating" {
			return apperrors.NewValidationError("rating", apperrors.MsgRatingNumber)
		}
		return apperrors.NewValidationError(typeErr.Field, apperrors.MsgInvalidType(typeErr.Field, kindName(typeErr.Type)))
	}
	return &apperrors.ValidationError{}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	default:
		return "value"
	}
}

// ParseReleaseDate accepts YYYY-MM-DD or RFC3339.
func ParseReleaseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func wholeNumber(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return f == math.Trunc(f) && !math.IsInf(f, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func validReleaseDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := ParseReleaseDate(s)
	return err == nil
}
