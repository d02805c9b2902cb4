package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
}

func TestServiceUnavailable_Retryable(t *testing.T) {
	err := ServiceUnavailable("arraygate is not ready")
	if err.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", err.HTTPStatus)
	}
	if !err.ToResponse().Error.Retryable {
		t.Error("SERVICE_UNAVAILABLE should be retryable")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"not found", NotFound("route", "/nope"), ErrCodeNotFound, http.StatusNotFound},
		{"already exists", AlreadyExists("User already exists"), ErrCodeAlreadyExists, http.StatusBadRequest},
		{"invalid input", InvalidInput("numbers", "must be a list"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"validation", Validation("username: is required"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"empty input", EmptyInput("numbers"), ErrCodeEmptyInput, http.StatusBadRequest},
		{"payload too large", PayloadTooLarge(1024), ErrCodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"unauthorized", Unauthorized("Invalid credentials"), ErrCodeUnauthorized, http.StatusUnauthorized},
		{"invalid token", InvalidToken(), ErrCodeInvalidToken, http.StatusUnauthorized},
		{"internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
			if tc.err.ToResponse().Error.Retryable {
				t.Errorf("%s should not be retryable", tc.code)
			}
		})
	}
}

func TestNotFound_EmptyID(t *testing.T) {
	err := NotFound("user", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestUnauthorized_DefaultMessage(t *testing.T) {
	err := Unauthorized("")
	if err.Message != "Authentication required." {
		t.Errorf("unexpected default message %q", err.Message)
	}
}

func TestEmptyInput_Details(t *testing.T) {
	err := EmptyInput("numbers")
	if err.Details["field"] != "numbers" {
		t.Errorf("expected field=numbers, got %v", err.Details["field"])
	}
	if !strings.Contains(err.Message, "numbers") {
		t.Errorf("expected message to mention the field, got %q", err.Message)
	}
}

func TestAppError_ErrorString(t *testing.T) {
	plain := New(ErrCodeInvalidInput, "bad", http.StatusBadRequest)
	if got := plain.Error(); got != "INVALID_INPUT: bad" {
		t.Errorf("unexpected Error(): %q", got)
	}

	wrapped := Internal(fmt.Errorf("disk full"))
	if !strings.Contains(wrapped.Error(), "disk full") {
		t.Errorf("expected cause in Error(), got %q", wrapped.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := Unauthorized("Invalid credentials").WithCause(fmt.Errorf("wrap: %w", sentinel))
	if !stderrors.Is(err, sentinel) {
		t.Error("expected errors.Is to find the sentinel through Unwrap")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := Validation("bad").WithDetail("fields", []string{"a"}).WithDetail("hint", "x")
	if len(err.Details) != 2 {
		t.Fatalf("expected 2 details, got %d", len(err.Details))
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", InvalidToken())

	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeInvalidToken {
		t.Fatalf("expected INVALID_TOKEN, got %v", appErr)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain errors are not AppErrors")
	}
}

func TestToResponse_HidesCause(t *testing.T) {
	err := Internal(fmt.Errorf("secret detail"))
	body, marshalErr := json.Marshal(err.ToResponse())
	if marshalErr != nil {
		t.Fatalf("marshal: %v", marshalErr)
	}
	if strings.Contains(string(body), "secret detail") {
		t.Errorf("response leaked the cause: %s", body)
	}
	if !strings.Contains(string(body), `"code":"INTERNAL_ERROR"`) {
		t.Errorf("unexpected body: %s", body)
	}
}
