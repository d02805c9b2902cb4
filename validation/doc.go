// Package validation validates request structs using go-playground/validator
// struct tags and reports failures as INVALID_INPUT application errors.
//
//	type credentialsRequest struct {
//	    Username string `json:"username" validate:"required,max=128"`
//	}
//	if err := validation.Validate(req); err != nil {
//	    server.RespondWithError(c, err)
//	}
package validation
