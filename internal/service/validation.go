package service

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/salon-booking/pkg/util"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("tld_email", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		at := strings.LastIndex(value, "@")
		if at <= 0 {
			return false
		}
		domainPart := value[at+1:]
		dot := strings.LastIndex(domainPart, ".")
		return dot > 0 && dot < len(domainPart)-1
	})
	return v
}

// tagPriority orders failing tags: missing fields, then email shape, then length rules.
var tagPriority = []struct {
	tags []string
	code func(field string) string
	msg  string
}{
	{tags: []string{"required"}, code: func(string) string { return apperrors.CodeMissingField }, msg: "required fields are missing"},
	{tags: []string{"email", "tld_email"}, code: func(string) string { return apperrors.CodeInvalidEmail }, msg: "email address is invalid"},
	{tags: []string{"min"}, code: minCode, msg: ""},
}

func minCode(field string) string {
	if field == "password" {
		return apperrors.CodeInvalidPassword
	}
	return apperrors.CodeInvalidPhone
}

func minMessage(field string) string {
	if field == "password" {
		return "password must be at least 6 characters"
	}
	return "phone number must be at least 10 characters"
}

// validateStruct runs struct-tag validation and converts the result into a ValidationError.
func validateStruct(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(apperrors.CodeInvalidPayload, "invalid payload", nil)
	}

	for _, rule := range tagPriority {
		var fields []string
		for _, fe := range verrs {
			for _, tag := range rule.tags {
				if fe.Tag() == tag {
					fields = append(fields, fe.Field())
				}
			}
		}
		if len(fields) == 0 {
			continue
		}
		sort.Strings(fields)
		msg := rule.msg
		if msg == "" {
			msg = minMessage(fields[0])
		}
		return apperrors.NewValidationError(rule.code(fields[0]), msg, map[string]any{"fields": fields})
	}

	fe := verrs[0]
	return apperrors.NewValidationError(apperrors.CodeInvalidPayload, "invalid "+fe.Field(), map[string]any{"fields": []string{fe.Field()}})
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
