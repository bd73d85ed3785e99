package gateway

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"shareit/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error

	// clock is swapped in tests.
	clock = time.Now
)

// registerValidators installs the custom tags on gin's validator engine.
func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}

		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if lt, ok := field.Interface().(models.LocalTime); ok {
				return lt.Time
			}
			return nil
		}, models.LocalTime{})

		for tag, fn := range map[string]validator.Func{
			"notblank":        notBlank,
			"future":          future,
			"futureorpresent": futureOrPresent,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				registerErr = fmt.Errorf("register %s validator: %w", tag, err)
				return
			}
		}
	})
	return registerErr
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(field.String()) != ""
}

func future(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && t.After(clock())
}

// futureOrPresent compares at whole seconds, the resolution of wire timestamps.
func futureOrPresent(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	return ok && !t.Before(clock().Truncate(time.Second))
}

// validationMessage renders the first failing field as "Field <name> <message>".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	return fmt.Sprintf("Field %s %s", fe.Field(), tagMessage(fe))
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be null"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a well-formed email address"
	case "future":
		return "must be a future date"
	case "futureorpresent":
		return "must be a date in the present or in the future"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
