package api

import (
	"github.com/labstack/echo/v4"

	"gamecatalog/pkg/validation"
)

// CustomValidator plugs the shared validator into echo's c.Validate.
type CustomValidator struct{}

func NewValidator() echo.Validator {
	return &CustomValidator{}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return validation.Struct(i)
}
