package validators

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

var (
	specialRegex = regexp.MustCompile(`[\\^$*.\[\]{}()?"!@#%&/\\,><':;|_~` + "`" + `=+\-]`)
	hasSpaces    = regexp.MustCompile(`\s+`)
)

// New builds the validator shared by all services, with the custom tags
// registered and field errors reported under their JSON names.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	_ = validate.RegisterValidation("hasupper", HasUpper)
	_ = validate.RegisterValidation("haslower", HasLower)
	_ = validate.RegisterValidation("hasdigit", HasDigit)
	_ = validate.RegisterValidation("hasspecial", HasSpecial)
	_ = validate.RegisterValidation("nospaces", NoWhiteSpaces)
	_ = validate.RegisterValidation("maxbytes", MaxBytes)
	return validate
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

func HasUpper(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, ch := range val {
		if unicode.IsUpper(ch) {
			return true
		}
	}
	return false
}

func HasLower(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, ch := range val {
		if unicode.IsLower(ch) {
			return true
		}
	}
	return false
}

func HasDigit(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	for _, ch := range val {
		if unicode.IsDigit(ch) {
			return true
		}
	}
	return false
}

func HasSpecial(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return specialRegex.MatchString(val)
}

// NoWhiteSpaces returns false if the string contains any whitespace (rejecting the user input).
func NoWhiteSpaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	str := field.String()
	return !hasSpaces.MatchString(str)
}

// MaxBytes bounds the UTF-8 byte length of a string, unlike max which counts runes.
// bcrypt refuses passwords longer than 72 bytes.
func MaxBytes(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		log.Warnf("validator 'maxbytes' has invalid param %q", fl.Param())
		return false
	}
	return len(field.String()) <= limit
}
