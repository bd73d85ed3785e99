package gateway

import (
	"errors"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation_BookingTimesAgainstClock(t *testing.T) {
	require.NoError(t, registerValidators())

	now := time.Date(2026, 3, 1, 12, 0, 0, 500_000_000, time.Local)
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = time.Now })

	at := func(d time.Duration) *models.LocalTime {
		lt := models.NewLocalTime(now.Truncate(time.Second).Add(d))
		return &lt
	}
	itemID := int64(1)

	tests := []struct {
		name    string
		req     bookingRequest
		message string
	}{
		{"StartNowIsPresent", bookingRequest{ItemID: &itemID, Start: at(0), End: at(time.Hour)}, ""},
		{"StartJustPast", bookingRequest{ItemID: &itemID, Start: at(-time.Second), End: at(time.Hour)}, "Field start must be a date in the present or in the future"},
		{"EndNowIsNotFuture", bookingRequest{ItemID: &itemID, Start: at(0), End: at(0)}, "Field end must be a future date"},
		{"MissingStart", bookingRequest{ItemID: &itemID, End: at(time.Hour)}, "Field start must not be null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.message, validationMessage(err))
		})
	}
}

func TestValidation_Messages(t *testing.T) {
	require.NoError(t, registerValidators())

	zero := int64(0)
	name, desc, avail := "Drill", "Cordless", true
	err := binding.Validator.ValidateStruct(&itemCreateRequest{Name: &name, Description: &desc, Available: &avail, RequestID: &zero})
	require.Error(t, err)
	assert.Equal(t, "Field requestId must be greater than 0", validationMessage(err))

	assert.NoError(t, binding.Validator.ValidateStruct(&itemUpdateRequest{}))
	assert.NoError(t, binding.Validator.ValidateStruct(&userUpdateRequest{}))

	assert.Equal(t, "unexpected EOF", validationMessage(errors.New("unexpected EOF")))
}
