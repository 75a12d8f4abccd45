package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatewayError(t *testing.T) {
	tests := []struct {
		name          string
		gateway       string
		underlyingErr error
		retryable     bool
		wantContains  []string
	}{
		{
			name:          "non-retryable rejection",
			gateway:       "payment-api",
			underlyingErr: errors.New("status failed"),
			retryable:     false,
			wantContains:  []string{"payment-api", "status failed"},
		},
		{
			name:          "retryable server error",
			gateway:       "payment-api",
			underlyingErr: errors.New("unexpected status 503"),
			retryable:     true,
			wantContains:  []string{"payment-api", "503"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err *GatewayError
			if tt.retryable {
				err = NewRetryableGatewayError(tt.gateway, tt.underlyingErr)
			} else {
				err = NewGatewayError(tt.gateway, tt.underlyingErr)
			}

			for _, want := range tt.wantContains {
				assert.Contains(t, err.Error(), want)
			}
			assert.True(t, errors.Is(err, tt.underlyingErr))
			assert.True(t, errors.Is(err, ErrPaymentInitiationFailed))
			assert.Equal(t, tt.retryable, IsRetryable(err))
			assert.Equal(t, tt.retryable, IsRetryable(fmt.Errorf("wrapped: %w", err)))
		})
	}
}

func TestValidationFailure(t *testing.T) {
	errs := ValidationErrorMap{}.
		Set(0, "email", MsgInvalidEmail).
		Set(2, ErrorKeyPassportExpiry, MsgPassportExpired).
		Set(2, "title", MsgRequired)

	err := NewValidationFailure(errs)

	assert.True(t, IsValidationFailed(err))
	assert.Contains(t, err.Error(), "3 field error(s) across 2 passenger(s)")

	var failure *ValidationFailure
	assert.True(t, errors.As(fmt.Errorf("submit: %w", err), &failure))
	assert.Equal(t, errs, failure.Errors)
}

func TestWrapInvalidRequest(t *testing.T) {
	tests := []struct {
		name         string
		format       string
		args         []interface{}
		wantContains string
	}{
		{
			name:         "single argument",
			format:       "field %s is required",
			args:         []interface{}{"offer_id"},
			wantContains: "field offer_id is required",
		},
		{
			name:         "multiple arguments",
			format:       "passenger index %d outside 0..%d",
			args:         []interface{}{4, 2},
			wantContains: "passenger index 4 outside 0..2",
		},
		{
			name:         "no arguments",
			format:       "invalid request format",
			args:         nil,
			wantContains: "invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapInvalidRequest(tt.format, tt.args...)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}

func TestErrorCheckers(t *testing.T) {
	tests := []struct {
		name       string
		checkFunc  func(error) bool
		err        error
		wantResult bool
	}{
		// IsInvalidRequest tests
		{
			name:       "IsInvalidRequest with ErrInvalidRequest",
			checkFunc:  IsInvalidRequest,
			err:        ErrInvalidRequest,
			wantResult: true,
		},
		{
			name:       "IsInvalidRequest with wrapped error",
			checkFunc:  IsInvalidRequest,
			err:        WrapInvalidRequest("test"),
			wantResult: true,
		},
		{
			name:       "IsInvalidRequest with different error",
			checkFunc:  IsInvalidRequest,
			err:        ErrSessionNotFound,
			wantResult: false,
		},
		// IsValidationFailed tests
		{
			name:       "IsValidationFailed with sentinel",
			checkFunc:  IsValidationFailed,
			err:        ErrValidationFailed,
			wantResult: true,
		},
		{
			name:       "IsValidationFailed with different error",
			checkFunc:  IsValidationFailed,
			err:        ErrZeroAmount,
			wantResult: false,
		},
		// IsRetryable tests
		{
			name:       "IsRetryable with plain error",
			checkFunc:  IsRetryable,
			err:        errors.New("boom"),
			wantResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantResult, tt.checkFunc(tt.err))
		})
	}
}
