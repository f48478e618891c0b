package tests

import (
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questionPayload(prompt string) map[string]interface{} {
	return map[string]interface{}{
		"prompt":      prompt,
		"topic_id":    1,
		"subtopic_id": 1,
		"format":      "multiple_choice",
		"difficulty":  "medium",
		"explanation": "Hand hygiene is the single most effective measure.",
		"citations":   "CDC Guideline for Hand Hygiene in Health-Care Settings",
		"options": []map[string]interface{}{
			{"text": "Perform hand hygiene", "is_correct": true},
			{"text": "Don sterile gloves"},
			{"text": "Apply a surgical mask"},
		},
	}
}

func TestAdminAccessRequired(t *testing.T) {
	resp, _ := doRequest(t, "POST", "/api/admin/questions", jwtToken, questionPayload("Forbidden attempt"))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, "GET", "/api/admin/analytics", jwtToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminQuestionLifecycle(t *testing.T) {
	admin := createUser("admin", "admin@example.com", "password", "admin")
	token := tokenFor(t, admin)

	resp, result := doRequest(t, "POST", "/api/admin/questions", token,
		questionPayload("A nurse prepares to enter a contact-precautions room. What comes first?"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	data := dataField(t, result)
	question, ok := data["question"].(map[string]interface{})
	require.True(t, ok)
	createdID := uint(question["ID"].(float64))
	require.NotZero(t, createdID)

	// A question without a correct option is rejected
	broken := questionPayload("Broken question")
	broken["options"] = []map[string]interface{}{
		{"text": "Neither"},
		{"text": "Nor"},
	}
	resp, _ = doRequest(t, "POST", "/api/admin/questions", token, broken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Update replaces the options wholesale
	updated := questionPayload("A nurse prepares to enter a contact-precautions room. What is done first?")
	updated["options"] = []map[string]interface{}{
		{"text": "Perform hand hygiene", "is_correct": true},
		{"text": "Don a gown"},
	}
	resp, result = doRequest(t, "PUT", "/api/admin/questions/"+strconv.Itoa(int(createdID)), token, updated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = dataField(t, result)
	question = data["question"].(map[string]interface{})
	options, ok := question["Options"].([]interface{})
	require.True(t, ok)
	assert.Len(t, options, 2)

	resp, _ = doRequest(t, "PUT", "/api/admin/questions/987654", token, updated)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminAnalytics(t *testing.T) {
	admin := createUser("analyst", "analyst@example.com", "password", "admin")
	token := tokenFor(t, admin)

	// Per-question stats for an untouched sample question are all zero
	resp, result := doRequest(t, "GET", "/api/admin/questions/13/analytics", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := dataField(t, result)
	assert.Equal(t, float64(13), data["question_id"])

	resp, result = doRequest(t, "GET", "/api/admin/analytics", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = dataField(t, result)
	assert.Greater(t, data["total_users"], float64(0))
	assert.Greater(t, data["total_questions"], float64(0))
}
