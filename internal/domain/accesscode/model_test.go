package accesscode

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volentia/internal/core/apperror"
	appcontext "volentia/internal/core/context"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		require.Len(t, code, codeLength)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
		assert.False(t, seen[code], "generated duplicate code %s", code)
		seen[code] = true
	}
}

func TestRedeemable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		mutate   func(*AccessCode)
		wantCode string
	}{
		{
			name:   "active unlimited code is redeemable",
			mutate: func(c *AccessCode) {},
		},
		{
			name:     "inactive code reads as not found",
			mutate:   func(c *AccessCode) { c.Active = false },
			wantCode: apperror.CodeNotFound,
		},
		{
			name:     "deleted code reads as not found",
			mutate:   func(c *AccessCode) { c.DeletionMark = true },
			wantCode: apperror.CodeNotFound,
		},
		{
			name:     "expired code",
			mutate:   func(c *AccessCode) { c.ExpiresAt = &past },
			wantCode: apperror.CodeCodeExpired,
		},
		{
			name:   "future expiry is fine",
			mutate: func(c *AccessCode) { c.ExpiresAt = &future },
		},
		{
			name: "exhausted code",
			mutate: func(c *AccessCode) {
				c.MaxUses = 3
				c.UsedCount = 3
			},
			wantCode: apperror.CodeCodeExhausted,
		},
		{
			name: "one use left",
			mutate: func(c *AccessCode) {
				c.MaxUses = 3
				c.UsedCount = 2
			},
		},
		{
			name: "zero max uses means unlimited",
			mutate: func(c *AccessCode) {
				c.MaxUses = 0
				c.UsedCount = 1000
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := New(appcontext.RoleEndUser)
			tt.mutate(code)

			err := code.Redeemable(now)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestValidate(t *testing.T) {
	code := New(appcontext.Role("plumber"))
	err := code.Validate(context.Background())
	require.Error(t, err)

	code = New(appcontext.RoleHRAdmin)
	code.MaxUses = -1
	err = code.Validate(context.Background())
	require.Error(t, err)

	code = New(appcontext.RoleHRAdmin)
	assert.NoError(t, code.Validate(context.Background()))
}
