package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/ironstore/internal/validate"
)

// Schemas for every mutating request body. Registration and login go
// through the same validator as the product routes.
var (
	registerSchema = &validate.Schema{
		Name: "register",
		Rules: []validate.Rule{
			{Field: "email", Type: validate.String, Required: true, Email: true, MaxLen: 255},
			{Field: "password", Type: validate.String, Required: true, MinLen: 6, MaxLen: 72},
			{Field: "name", Type: validate.String, Required: true, MinLen: 1, MaxLen: 100},
			{Field: "age", Type: validate.Integer, Required: true, Min: validate.Bound(13), Max: validate.Bound(120)},
			{Field: "bio", Type: validate.String, MaxLen: 1000},
		},
	}

	loginSchema = &validate.Schema{
		Name: "login",
		Rules: []validate.Rule{
			{Field: "email", Type: validate.String, Required: true, Email: true},
			{Field: "password", Type: validate.String, Required: true},
		},
	}

	productCreateSchema = &validate.Schema{
		Name: "product-create",
		Rules: []validate.Rule{
			{Field: "title", Type: validate.String, Required: true, MinLen: 1, MaxLen: 200},
			{Field: "price", Type: validate.Number, Required: true, Min: validate.Bound(0)},
			{Field: "in_stock", Type: validate.Bool, Required: true},
			{Field: "description", Type: validate.String, MaxLen: 2000},
		},
	}

	productUpdateSchema = &validate.Schema{
		Name:       "product-update",
		RequireAny: true,
		Rules: []validate.Rule{
			{Field: "title", Type: validate.String, MinLen: 1, MaxLen: 200},
			{Field: "price", Type: validate.Number, Min: validate.Bound(0)},
			{Field: "in_stock", Type: validate.Bool},
			{Field: "description", Type: validate.String, MaxLen: 2000},
		},
	}
)

// bindValidated decodes the request body and checks it against schema.
// On failure it writes the validation envelope and returns ok=false.
func bindValidated(c echo.Context, schema *validate.Schema) (map[string]interface{}, bool) {
	payload := map[string]interface{}{}
	if err := c.Bind(&payload); err != nil {
		_ = fail(c, http.StatusBadRequest, codeValidation, "invalid request body")
		return nil, false
	}

	if violations := schema.Validate(payload); violations != nil {
		_ = failWith(c, http.StatusBadRequest, codeValidation, "validation failed", violations)
		return nil, false
	}

	return payload, true
}
