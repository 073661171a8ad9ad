package middleware

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"aaamo-store/internal/domain"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// report json field names so clients can map errors back to form inputs
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("egphone", func(fl validator.FieldLevel) bool {
		return domain.IsValidPhone(fl.Field().String())
	})
}

// ValidateRequest validates a struct against its validate tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate decodes JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormatValidationErrors converts validator errors to a readable format
func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
	}

	return errors
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "هذا الحقل مطلوب"
	case "email":
		return "صيغة البريد الإلكتروني غير صحيحة"
	case "url":
		return "الرابط غير صحيح"
	case "egphone":
		return "رقم الهاتف يجب أن يكون 11 رقمًا ويبدأ بـ 010, 011, 012, أو 015"
	case "min":
		return "القيمة أقل من الحد الأدنى " + e.Param()
	case "max":
		return "القيمة أكبر من الحد الأقصى " + e.Param()
	case "gte":
		return "القيمة يجب أن تكون أكبر من أو تساوي " + e.Param()
	case "lte":
		return "القيمة يجب أن تكون أقل من أو تساوي " + e.Param()
	case "gt":
		return "القيمة يجب أن تكون أكبر من " + e.Param()
	case "lt":
		return "القيمة يجب أن تكون أقل من " + e.Param()
	case "gtfield":
		return "القيمة يجب أن تكون بعد " + e.Param()
	default:
		return "قيمة غير صالحة"
	}
}
