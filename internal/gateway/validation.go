package gateway

import (
	"errors"
	"fmt"
	"strings"

	apperrors "wedding-gateway/pkg/app_errors"

	"github.com/go-playground/validator/v10"
)

func (g *GatewayImpl) checkStruct(op string, v any) error {
	if err := g.validate.Struct(v); err != nil {
		return apperrors.InvalidInput(op, validationMessage(err))
	}
	return nil
}

// checkRequired only refuses blank values; format is left to the remote service.
func checkRequired(op, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.InvalidInput(op, fmt.Sprintf("%s is required", field))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not valid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}
