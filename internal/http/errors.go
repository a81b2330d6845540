package http

import (
	"fmt"

	"hostprobe/internal/shared/svcerrors"
)

const (
	codeNotFound         = "DIAG_4040"
	codeMethodNotAllowed = "DIAG_4050"

	codeInternalMetricsRenderFailed = "DIAG_9000"
	codeInternalStaticReadFailed    = "DIAG_9001"
	codeInternalEncodeFailed        = "DIAG_9002"
)

// errNotFound returns an error for paths with no route or asset.
func errNotFound(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeNotFound, "Not Found", cause)
}

// errMethodNotAllowed returns an error for known paths requested with another method.
func errMethodNotAllowed() *svcerrors.ServiceError {
	return svcerrors.NewMethodNotAllowedError(codeMethodNotAllowed, "Method Not Allowed", nil)
}

// errInternalMetricsRenderFailed returns an error when no metrics could be rendered.
func errInternalMetricsRenderFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalMetricsRenderFailed, fmt.Errorf("metricsRenderFailed: %w", cause))
}

// errInternalStaticReadFailed returns an error when a static asset cannot be read.
func errInternalStaticReadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStaticReadFailed, fmt.Errorf("staticReadFailed: %w", cause))
}

func errInternalEncodeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEncodeFailed, fmt.Errorf("encodeFailed: %w", cause))
}
