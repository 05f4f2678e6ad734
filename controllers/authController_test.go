package controllers_test

import (
	"net/http"
	"testing"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginAndMe(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/auth/signup", "", gin.H{
		"name":     "Grace Farmer",
		"email":    "Grace@Example.com",
		"password": "secret123",
		"role":     models.RoleFarmer,
		"location": "Eldoret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "secret123")

	w = h.do(http.MethodPost, "/auth/signup", "", gin.H{
		"name":     "Grace Again",
		"email":    "grace@example.com",
		"password": "secret123",
		"role":     models.RoleCustomer,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/auth/login", "", gin.H{"email": "grace@example.com", "password": "wrong-password", "role": models.RoleFarmer})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/auth/login", "", gin.H{"email": "grace@example.com", "password": "secret123", "role": models.RoleCustomer})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "role is incorrect")

	w = h.do(http.MethodPost, "/auth/login", "", gin.H{"email": "grace@example.com", "password": "secret123", "role": models.RoleFarmer})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	decode(t, w, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "Eldoret", login.User.Location)

	w = h.do(http.MethodGet, "/auth/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		User models.User `json:"user"`
	}
	decode(t, w, &me)
	assert.Equal(t, login.User.ID, me.User.ID)
	assert.Equal(t, models.RoleFarmer, me.User.Role)
}

func TestSignupValidation(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing email", gin.H{"name": "A", "password": "secret123", "role": models.RoleCustomer}},
		{"short password", gin.H{"name": "A", "email": "a@example.com", "password": "123", "role": models.RoleCustomer}},
		{"unknown role", gin.H{"name": "A", "email": "a@example.com", "password": "secret123", "role": "admin"}},
		{"farmer without location", gin.H{"name": "A", "email": "a@example.com", "password": "secret123", "role": models.RoleFarmer}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := h.do(http.MethodPost, "/auth/signup", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestProtectedRoutesNeedAValidToken(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodGet, "/cart", "not-a-token", nil).Code)

	_, customer := h.account(models.RoleCustomer, "Mary Customer")
	w := h.do(http.MethodPost, "/products", customer, gin.H{"name": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/notifications", customer, nil).Code)
}
