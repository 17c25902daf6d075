package validator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("pickupdate", layoutValidator("2006-01-02"))
	_ = validate.RegisterValidation("pickuptime", layoutValidator("15:04"))
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}

// Validate struct fields
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["_"] = err.Error()
		return errors
	}
	for _, err := range verrs {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
