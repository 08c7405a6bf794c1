package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"reserva/shared/clock"
	"reserva/shared/constant"
	"reserva/shared/failure"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// nombre allows letters, including accented ones, separated by single spaces.
var namePattern = regexp.MustCompile(`^\p{L}+( \p{L}+)*$`)

func registerTimeOfDayValidation(field val.FieldLevel) bool {
	switch v := field.Field().Interface().(type) {
	case string:
		_, err := clock.Parse(v)

		return err == nil
	case clock.Clock:
		return v.Valid()
	}

	return false
}

func registerDateValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := time.Parse(constant.DayFormat, value)

	return err == nil
}

func registerNameValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return namePattern.MatchString(strings.TrimSpace(value))
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			name = strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		}

		if name == "" {
			return field.Name
		}

		return name
	})

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})
	if err != nil {
		panic(err)
	}

	Register("hhmm", registerTimeOfDayValidation)
	Register("fecha", registerDateValidation)
	Register("nombre", registerNameValidation)
}

// Register adds a custom tag. Domain packages call it from init for the
// enumerations they own, so it panics on a programming error.
func Register(tag string, fn val.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if errors.Is(err, io.EOF) {
		return failure.MissingFields
	}

	if err != nil {
		return failure.BadRequest(fmt.Errorf("cuerpo de la solicitud inválido: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
