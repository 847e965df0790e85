package validation

import (
	"errors"
	"testing"

	"github.com/dmitrijs2005/clubportal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	tests := []struct {
		name                  string
		user, email, pw, conf string
		wantReason            string
	}{
		{"ok", "Ann Lee", "ann@uni.edu", "pw", "pw", ""},
		{"missing name", "", "ann@uni.edu", "pw", "pw", ReasonMissingFields},
		{"missing password", "Ann", "ann@uni.edu", "", "", ReasonMissingFields},
		{"digits in name", "Ann2", "ann@uni.edu", "pw", "pw", ReasonNameLetters},
		{"too short", "A", "ann@uni.edu", "pw", "pw", ReasonNameShort},
		{"short after trim", " A ", "ann@uni.edu", "pw", "pw", ReasonNameShort},
		{"bad email", "Ann", "ann@uni", "pw", "pw", ReasonEmail},
		{"email with space", "Ann", "a nn@uni.edu", "pw", "pw", ReasonEmail},
		{"mismatch", "Ann", "ann@uni.edu", "pw", "pW", ReasonPasswordMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Signup(tt.user, tt.email, tt.pw, tt.conf)
			if tt.wantReason == "" {
				require.NoError(t, err)
				return
			}
			var ve *Error
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.wantReason, ve.Reason)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	assert.NoError(t, Login("a@b.c", "x"))
	assert.ErrorIs(t, Login(" ", "x"), common.ErrValidation)
	assert.ErrorIs(t, Login("a@b.c", ""), common.ErrValidation)
}

func TestRequired(t *testing.T) {
	assert.NoError(t, Required("message", "hello"))
	err := Required("message", "   ")
	require.Error(t, err)
	assert.Equal(t, "message: message is required", err.Error())
}

func TestMessageAndRecipients(t *testing.T) {
	assert.NoError(t, Message("meeting at 5"))
	err := Message(" \n")
	require.ErrorIs(t, err, common.ErrValidation)
	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ReasonEmptyMessage, ve.Reason)

	assert.NoError(t, Recipients(3))
	err = Recipients(0)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ReasonNoRecipients, ve.Reason)
}
