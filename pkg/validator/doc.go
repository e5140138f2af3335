// Package validator validates structs with go-playground/validator tags and
// reports failures as a flat list of field errors keyed by JSON field name.
//
//	type Request struct {
//		Subject string `json:"subject" validate:"required"`
//	}
//
//	if err := validator.ValidateStruct(&req); err != nil {
//		if errs := validator.ExtractValidationErrors(err); errs != nil {
//			// errs.Fields() == []string{"subject"}, errs[0].Rule == "required"
//		}
//	}
package validator
