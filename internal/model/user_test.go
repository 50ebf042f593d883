package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Profile(t *testing.T) {
	now := time.Now()
	u := User{
		ID:           7,
		Username:     "admin",
		Email:        "admin@studiopickens.com",
		PasswordHash: "$2a$10$secret",
		Role:         RoleAdmin,
		LastLogin:    &now,
	}

	p := u.Profile()

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, "admin", p.Username)
	assert.Equal(t, "admin@studiopickens.com", p.Email)
	assert.Equal(t, RoleAdmin, p.Role)
	assert.Equal(t, &now, p.LastLogin)
}

func TestProfile_NeverExposesHash(t *testing.T) {
	u := User{
		ID:           1,
		Username:     "admin",
		Email:        "admin@studiopickens.com",
		PasswordHash: "$2a$10$secret",
		Role:         RoleAdmin,
	}

	data, err := json.Marshal(u.Profile())
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "secret"))
	assert.False(t, strings.Contains(string(data), "passwordHash"))
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleUser}.IsAdmin())
	assert.False(t, User{}.IsAdmin())
}
