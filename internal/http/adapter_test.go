package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hostprobe/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlingAdapter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		err              error
		expectedStatus   int
		expectedCategory string
		expectedCode     string
		expectedMessage  string
	}{
		{
			name:             "Internal error",
			err:              svcerrors.NewInternalError("TEST_5000", nil),
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "TEST_5000",
			expectedMessage:  "internal server error",
		},
		{
			name:             "Non-ServiceError",
			err:              assert.AnError,
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "SYS_9001",
			expectedMessage:  "internal server error",
		},
		{
			name:             "NotFound error",
			err:              errNotFound(nil),
			expectedStatus:   http.StatusNotFound,
			expectedCategory: "not_found",
			expectedCode:     "DIAG_4040",
			expectedMessage:  "Not Found",
		},
		{
			name:             "MethodNotAllowed error",
			err:              errMethodNotAllowed(),
			expectedStatus:   http.StatusMethodNotAllowed,
			expectedCategory: "method_not_allowed",
			expectedCode:     "DIAG_4050",
			expectedMessage:  "Method Not Allowed",
		},
		{
			name:             "Wrapped ServiceError",
			err:              fmt.Errorf("render: %w", errInternalMetricsRenderFailed(assert.AnError)),
			expectedStatus:   http.StatusInternalServerError,
			expectedCategory: "internal",
			expectedCode:     "DIAG_9000",
			expectedMessage:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := errorHandlingAdapter(&testHandler{
				handleFunc: func(w http.ResponseWriter, r *http.Request) error {
					return tt.err
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			reqID := "test-request-id-" + tt.name
			req = withRequestID(req, reqID)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var errorResponse ErrorResponse
			err := json.Unmarshal(rr.Body.Bytes(), &errorResponse)
			require.NoError(t, err)

			assert.Equal(t, reqID, errorResponse.RequestID)
			assert.Equal(t, tt.expectedCategory, errorResponse.ErrorCategory)
			assert.Equal(t, tt.expectedCode, errorResponse.ErrorCode)
			assert.Equal(t, tt.expectedMessage, errorResponse.ErrorDescription)
		})
	}
}

func TestErrorHandlingAdapter_NoError(t *testing.T) {
	t.Parallel()

	handler := errorHandlingAdapter(&testHandler{
		handleFunc: func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("success"))
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Body.String())
}

func TestErrorHandlingAdapter_RecordsErrorCodeOnAppWriter(t *testing.T) {
	t.Parallel()

	handler := errorHandlingAdapter(AppHttpHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		return errNotFound(nil)
	}))

	rr := httptest.NewRecorder()
	appWriter := newAppResponseWriter(rr, 1)
	handler.ServeHTTP(appWriter, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, appWriter.Status())
	assert.Equal(t, "DIAG_4040", appWriter.ErrorCode())
}

func TestErrorHandlingAdapter_ErrorAfterWrite(t *testing.T) {
	t.Parallel()

	handler := errorHandlingAdapter(AppHttpHandlerFunc(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("body"))
		return errInternalStaticReadFailed(assert.AnError)
	}))

	rr := httptest.NewRecorder()
	appWriter := newAppResponseWriter(rr, 1)
	handler.ServeHTTP(appWriter, httptest.NewRequest(http.MethodGet, "/file", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "body", rr.Body.String())
	assert.Equal(t, "DIAG_9001", appWriter.ErrorCode())
}

// testHandler wraps a function to implement AppHttpHandler interface for testing
type testHandler struct {
	handleFunc func(w http.ResponseWriter, r *http.Request) error
}

func (h *testHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return h.handleFunc(w, r)
}
