package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/go-drift/piet/pkg/debug"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// ValidationError names the offending field by its file key path.
type ValidationError struct {
	Field string
	Tag   string
	Value any
}

func (e *ValidationError) Error() string {
	if e.Tag == "debug_behavior" {
		return fmt.Sprintf("%s: unknown debug behavior %q (want silent, warning, verbose or strict)", e.Field, e.Value)
	}
	return fmt.Sprintf("%s failed validation for tag '%s'", e.Field, e.Tag)
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("debug_behavior", func(fl validator.FieldLevel) bool {
			_, ok := debug.ParseBehavior(fl.Field().String())
			return ok
		})

		validateInst = v
	})
	return validateInst
}

// Validate checks cfg against its field rules and reports the first
// failure.
func Validate(cfg *HostConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return &ValidationError{Field: keyPath(fe), Tag: fe.Tag(), Value: fe.Value()}
	}
	return err
}

// keyPath drops the root struct name from the namespace.
func keyPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
