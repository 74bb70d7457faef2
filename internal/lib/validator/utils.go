package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"yamdb/proj/internal/domain/roles"
	"yamdb/proj/internal/utils"

	govalidator "github.com/go-playground/validator/v10"
)

const (
	MinYear           = 1900
	ReservedUsername  = "me"
	MaxUsernameLength = 150
)

var (
	usernameRx = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	slugRx     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// New returns a validator with the project specific tags registered.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	v.RegisterValidation("username", ValidateUsername)
	v.RegisterValidation("slug", ValidateSlug)
	v.RegisterValidation("year", ValidateYear)
	v.RegisterValidation("role", ValidateRole)
	return v
}

func structType(obj any) reflect.Type {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// baseField strips the index dive errors append: "Genre[0]" -> "Genre".
func baseField(structField string) string {
	if i := strings.IndexByte(structField, '['); i >= 0 {
		return structField[:i]
	}
	return structField
}

func getFieldName(obj any, origFieldName string) (fieldName string) {
	origFieldName = baseField(origFieldName)
	t := structType(obj)
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	fieldName = utils.CamelToSnake(origFieldName)
	if tag := field.Tag.Get("json"); tag != "" && tag != "-" {
		if jsonName := strings.Split(tag, ",")[0]; jsonName != "" {
			fieldName = jsonName
		}
	}
	return
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

// ValidateStruct returns nil when obj is valid, otherwise messages keyed by
// JSON field name.
func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := structType(obj)
	field, found := t.FieldByName(baseField(err.StructField()))
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", err.StructField(), t.Name()))
	}
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg == "" {
		switch err.Tag() {
		case "required":
			errorMsg = "This field is required"
		case "max":
			errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
		case "min":
			errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
		case "gte":
			errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
		case "lte":
			errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
		case "oneof":
			errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
		case "unique":
			errorMsg = "Value must not contain duplicate values"
		case "email":
			errorMsg = "Value must be a valid email address"
		case "username":
			errorMsg = fmt.Sprintf(
				"Value may contain up to %d letters, digits and @/./+/-/_ characters and must not be %q",
				MaxUsernameLength, ReservedUsername,
			)
		case "slug":
			errorMsg = "Value may contain only latin letters, digits, hyphens and underscores"
		case "year":
			errorMsg = fmt.Sprintf("Year must be between %d and the current year", MinYear)
		case "role":
			errorMsg = fmt.Sprintf("Value should be one of %s, %s, %s", roles.User, roles.Moderator, roles.Admin)
		default:
			errorMsg = "This field is invalid"
		}
	}
	return
}

// CUSTOM VALIDATORS

func IsValidUsername(username string) bool {
	return utf8.RuneCountInString(username) <= MaxUsernameLength &&
		usernameRx.MatchString(username) &&
		!strings.EqualFold(username, ReservedUsername)
}

func ValidateUsername(fl govalidator.FieldLevel) bool {
	return IsValidUsername(fl.Field().String())
}

func ValidateSlug(fl govalidator.FieldLevel) bool {
	return slugRx.MatchString(fl.Field().String())
}

func IsValidYear(year int) bool {
	return year >= MinYear && year <= time.Now().Year()
}

func ValidateYear(fl govalidator.FieldLevel) bool {
	return IsValidYear(int(fl.Field().Int()))
}

func ValidateRole(fl govalidator.FieldLevel) bool {
	return roles.Role(fl.Field().String()).Valid()
}
