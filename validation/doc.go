// Package validation validates request structs with go-playground/validator
// and reports failures as INVALID_INPUT application errors.
//
//	type Request struct {
//	    SourceURL string `json:"url" validate:"required,http_url"`
//	}
//	if err := validation.Validate(req); err != nil { ... }
//
// Field names in messages follow the json tag.
package validation
