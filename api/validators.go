package api

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/Drolfothesgnir/stackmark/backend"
	"github.com/Drolfothesgnir/stackmark/render"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators configures gin's validator: json tags become field
// names in errors, and the md_backend and md_format tags are added.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected binding validator engine")
			return
		}

		v.RegisterTagNameFunc(jsonTagName)

		if err := v.RegisterValidation("md_backend", validBackend); err != nil {
			registerErr = err
			return
		}
		registerErr = v.RegisterValidation("md_format", validFormat)
	})

	return registerErr
}

func jsonTagName(fld reflect.StructField) string {
	tag := fld.Tag.Get("json")
	if tag == "" {
		tag = fld.Tag.Get("form")
	}

	name := strings.SplitN(tag, ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validBackend(fl validator.FieldLevel) bool {
	return backend.Valid(fl.Field().String())
}

func validFormat(fl validator.FieldLevel) bool {
	return render.ValidFormat(fl.Field().String())
}
