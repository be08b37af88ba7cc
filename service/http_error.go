package service

import (
	"errors"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

// RegisterErrorHandler register custom error handler.
func RegisterErrorHandler(e *echo.Echo, logger log.Logger) {
	e.HTTPErrorHandler = NewHTTPErrorHandler(NewErrorCodeToStatusCodeMaps(), logger).Handler
}

// NewErrorCodeToStatusCodeMaps creates an error code to http status mapping.
func NewErrorCodeToStatusCodeMaps() map[string]int {
	var errorCodeToStatusCodeMaps = make(map[string]int)
	errorCodeToStatusCodeMaps[ErrBadParameter] = http.StatusBadRequest
	errorCodeToStatusCodeMaps[ErrEntityNotFound] = http.StatusNotFound
	errorCodeToStatusCodeMaps[ErrInternalServerError] = http.StatusInternalServerError

	return errorCodeToStatusCodeMaps
}

// HTTPErrorHandler is an error handler.
type HTTPErrorHandler struct {
	errorCodeToHTTPStatusCodeMap map[string]int
	logger                       log.Logger
}

// NewHTTPErrorHandler creates a new instance of the HTTPErrorHandler.
func NewHTTPErrorHandler(errorCodeToStatusCodeMaps map[string]int, logger log.Logger) *HTTPErrorHandler {
	return &HTTPErrorHandler{
		errorCodeToHTTPStatusCodeMap: errorCodeToStatusCodeMaps,
		logger:                       logger,
	}
}

func (h *HTTPErrorHandler) getStatusCode(errorCode string) int {
	status, ok := h.errorCodeToHTTPStatusCodeMap[errorCode]
	if ok {
		return status
	}

	return http.StatusInternalServerError
}

// Handler renders err as {"error":{"code","message"}}. Errors produced by echo itself
// (routing, binding, OpenAPI validation) keep their HTTP status and get the code
// matching it.
func (h *HTTPErrorHandler) Handler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var statusCode int
	var he *echo.HTTPError
	myErr := ToMyError(err)
	switch {
	case myErr != nil:
		statusCode = h.getStatusCode(myErr.Code)
	case errors.As(err, &he):
		if herr, ok := he.Internal.(*echo.HTTPError); ok {
			he = herr
		}
		m, ok := he.Message.(string)
		if !ok {
			m = http.StatusText(he.Code)
		}
		myErr = NewMyError(errorCodeForStatus(he), m, err)
		statusCode = he.Code
	default:
		myErr = NewMyError(ErrInternalServerError, "an internal server error has occurred", err)
		statusCode = http.StatusInternalServerError
	}

	logger := level.Warn(h.logger)
	if statusCode >= http.StatusInternalServerError {
		logger = level.Error(h.logger)
	}
	logger.Log(
		"msg", "HTTP request error",
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"status", statusCode,
		"err", err,
	)

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(statusCode)
		return
	}
	_ = c.JSON(statusCode, ErrResponse{Error: myErr})
}

func errorCodeForStatus(he *echo.HTTPError) string {
	var requestError *openapi3filter.RequestError
	switch {
	case errors.As(he.Internal, &requestError):
		return ErrBadParameter
	case he.Code == http.StatusNotFound:
		return ErrEntityNotFound
	case he.Code >= http.StatusBadRequest && he.Code < http.StatusInternalServerError:
		return ErrBadParameter
	default:
		return ErrInternalServerError
	}
}

// ErrResponse from server.
type ErrResponse struct {
	Error *MyError `json:"error,omitempty"`
}
