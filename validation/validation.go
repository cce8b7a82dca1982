// Package validation registers the custom binding rules used by request
// structs on gin's validator engine.
package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var bloodGroups = map[string]bool{
	"A+": true, "A-": true,
	"B+": true, "B-": true,
	"AB+": true, "AB-": true,
	"O+": true, "O-": true,
}

func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
		return bloodGroups[fl.Field().String()]
	})
}
