package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewUser(t *testing.T) {
	tests := []struct {
		name       string
		identity   string
		credential string
		wantErr    error
	}{
		{name: "valid user", identity: "user123", credential: "1234"},
		{name: "empty identity", identity: "", credential: "1234", wantErr: ErrInvalidCredential},
		{name: "blank identity", identity: "   ", credential: "1234", wantErr: ErrInvalidCredential},
		{name: "empty credential", identity: "user123", credential: "", wantErr: ErrInvalidCredential},
		{name: "credential too long", identity: "user123", credential: strings.Repeat("9", 73), wantErr: ErrInvalidCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.identity, tt.credential, bcrypt.MinCost)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.identity, user.Identity)
			require.NotNil(t, user.Account())
			assert.Equal(t, tt.identity, user.Account().Owner())
		})
	}
}

func TestUser_CheckCredential(t *testing.T) {
	user, err := NewUser("user123", "1234", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, user.CheckCredential("1234"))
	assert.ErrorIs(t, user.CheckCredential("123"), ErrCredentialMismatch, "prefix must not match")
	assert.ErrorIs(t, user.CheckCredential("12345"), ErrCredentialMismatch)
	assert.ErrorIs(t, user.CheckCredential(""), ErrCredentialMismatch)
	assert.ErrorIs(t, user.CheckCredential(strings.Repeat("1", 80)), ErrCredentialMismatch)
}
