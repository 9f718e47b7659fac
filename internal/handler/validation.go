package handler

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ridwanfathin/gst-invoice-service/internal/domain"
)

// RegisterValidators installs the custom binding tags used by the request
// models and reports fields by their JSON names.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("gst_rate", validateGSTRate); err != nil {
		return err
	}
	return v.RegisterValidation("discount_type", validateDiscountType)
}

func validateGSTRate(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return domain.GSTRate(fl.Field().Int()).Valid()
	default:
		return false
	}
}

func validateDiscountType(fl validator.FieldLevel) bool {
	kind := domain.DiscountKind(strings.ToLower(strings.TrimSpace(fl.Field().String())))
	return kind == "" || kind.Valid()
}
