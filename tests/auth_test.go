package tests

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["token"])
	assert.NotEmpty(t, result["user"])

	// Registered credentials work immediately
	resp, _ = doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "newuser",
		"password": "password123",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Missing password is rejected
	resp, _ = doRequest(t, "POST", "/api/auth/register", "", map[string]string{
		"username": "incomplete",
		"email":    "incomplete@example.com",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	resp, result := doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "password",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, result["token"])

	user, ok := result["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "testuser", user["username"])
}

func TestLoginWrongPassword(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/auth/login", "", map[string]string{
		"username": "testuser",
		"password": "not-the-password",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	resp, result := doRequest(t, "GET", "/api/user/profile", jwtToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := dataField(t, result)
	assert.Equal(t, "testuser", data["username"])
	assert.Equal(t, "test@example.com", data["email"])
}

func TestGetProfileUnauthorized(t *testing.T) {
	resp, _ := doRequest(t, "GET", "/api/user/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateProfile(t *testing.T) {
	user := createUser("updater", "updater@example.com", "password", "user")
	token := tokenFor(t, user)

	resp, _ := doRequest(t, "PUT", "/api/user/profile", token, map[string]string{
		"exam_date": "2026-10-15",
		"school":    "Johns Hopkins School of Nursing",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, result := doRequest(t, "GET", "/api/user/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := dataField(t, result)
	assert.Equal(t, "2026-10-15", data["exam_date"])
	assert.Equal(t, "Johns Hopkins School of Nursing", data["school"])

	resp, _ = doRequest(t, "PUT", "/api/user/profile", token, map[string]string{
		"exam_date": "October 15th",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
