package apperror

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Init switches gin's validator to json field names, so validation details
// use the same keys as the request body.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// MapValidationErrors turns validator errors into field -> message pairs.
// Field names come from json tags (see Init).
func MapValidationErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = validationMessage(fe)
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	name := humanize(fe.Field())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "uuid", "uuid4":
		return name + " must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	case "gt", "gte", "min":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "lt", "lte", "max":
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must match format %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}

func humanize(field string) string {
	return titleCaser.String(strings.ReplaceAll(field, "_", " "))
}
