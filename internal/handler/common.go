package handler

import (
	"errors"
	"net/http"

	apperrors "wedding-gateway/pkg/app_errors"
	"wedding-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// envelope is the body of every gateway response: exactly one of Data and Error is set.
type envelope struct {
	Data  any        `json:"data"`
	Error *errorBody `json:"error"`
}

type errorBody struct {
	Kind    apperrors.Kind `json:"kind"`
	Message string         `json:"message"`
}

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Error: &errorBody{
			Kind:    apperrors.KindInvalidInput,
			Message: "Invalid request format",
		}})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, envelope{Error: &errorBody{
			Kind:    apperrors.KindInvalidInput,
			Message: "Invalid request format",
		}})
		return err
	}
	return nil
}

func respond(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, envelope{Data: data})
}

func handleError(c *gin.Context, err error, operation string) {
	kind := apperrors.KindOf(err)
	status := statusFor(kind)

	message := err.Error()
	var ge *apperrors.GatewayError
	if errors.As(err, &ge) && ge.Message != "" {
		message = ge.Message
	}

	// the gateway has already logged the failure itself
	logger.WithComponent("handler").Debug("request failed",
		zap.String("operation", operation),
		zap.Int("status", status),
		zap.Error(err),
	)
	c.JSON(status, envelope{Error: &errorBody{Kind: kind, Message: message}})
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindPrecondition:
		return http.StatusServiceUnavailable
	case apperrors.KindInvalidInput:
		return http.StatusBadRequest
	case apperrors.KindRejected:
		return http.StatusBadGateway
	case apperrors.KindTransport:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
