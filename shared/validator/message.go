package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required": "Todos los campos son requeridos: falta {field}",
		"gte":      "{field} debe ser mayor o igual a {param}",
		"lte":      "{field} debe ser menor o igual a {param}",
		"gtfield":  "{field} debe ser posterior a {param}",
		"oneof":    "{field} debe ser uno de: {param}",
		"max":      "{field} admite como máximo {param} caracteres",
		"min":      "{field} requiere al menos {param} caracteres",
		"email":    "{field} debe ser un correo válido",
		"uuid":     "{field} debe ser un identificador válido",
		"hhmm":     "{field} debe tener el formato HH:MM",
		"fecha":    "{field} debe tener el formato YYYY-MM-DD",
		"nombre":   "{field} solo puede contener letras y espacios",
		"salon":    "El salón proporcionado no es válido.",
		"area":     "{field} no es un área válida",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			errStr := ""
			field := valErr.Field()
			param := valErr.Param()

			errStr = messages[valErr.Tag()]
			if errStr != "" {
				errStr = strings.ReplaceAll(errStr, "{field}", field)
				errStr = strings.ReplaceAll(errStr, "{param}", param)

				return errStr
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
