package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenadevi/tn-lms-backend/internal/entities"
	"github.com/veenadevi/tn-lms-backend/internal/registrar"
)

func TestRegister_Batch(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.request(t, "POST", "/auth/register", `{
		"isAdmin": true,
		"users": [
			{"userType": "student", "userFullName": "First Student", "admissionNo": "A1"},
			{"userType": "student", "userFullName": "Second Student", "admissionNo": "A2"}
		]
	}`)
	require.Equal(t, 200, w.Code)

	var result struct {
		Inserted []map[string]any `json:"inserted"`
		Skipped  []map[string]any `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Inserted, 2)
	assert.Empty(t, result.Skipped)
	// Password hashes never leave the server.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestRegister_SkipsDuplicates(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.request(t, "POST", "/auth/register",
		`{"isAdmin": true, "users": [{"userType": "student", "userFullName": "A", "admissionNo": "A1"}]}`)
	require.Equal(t, 200, w.Code)

	w = server.request(t, "POST", "/auth/register", `{
		"isAdmin": true,
		"users": [
			{"userType": "student", "userFullName": "A", "admissionNo": "A1"},
			{"userType": "student", "userFullName": "B", "admissionNo": "A2"}
		]
	}`)
	require.Equal(t, 200, w.Code)

	var result struct {
		Inserted []struct {
			AdmissionNo string `json:"admissionNo"`
		} `json:"inserted"`
		Skipped []struct {
			Reason      string `json:"reason"`
			AdmissionNo string `json:"admissionNo"`
		} `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Inserted, 1)
	assert.Equal(t, "A2", result.Inserted[0].AdmissionNo)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "duplicate", result.Skipped[0].Reason)
	assert.Equal(t, "A1", result.Skipped[0].AdmissionNo)
}

func TestRegister_Forbidden(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	// The users wrapper reads the flag from the envelope only; an item-level
	// isAdmin is member data and grants nothing, whatever the payload shape.
	payloads := []string{
		`{"users": [{"userType": "student", "userFullName": "A", "admissionNo": "A1", "isAdmin": true}]}`,
		`[{"userType": "student", "userFullName": "A", "admissionNo": "A1", "isAdmin": true}]`,
		`{"userType": "student", "userFullName": "A", "admissionNo": "A1", "isAdmin": true}`,
	}
	for _, payload := range payloads {
		w := server.request(t, "POST", "/auth/register", payload)
		assert.Equal(t, 403, w.Code, payload)
		assert.Equal(t, `"You dont have permission to register users!"`, w.Body.String())
	}
}

func TestRegister_ValidationError(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.request(t, "POST", "/auth/register",
		`{"isAdmin": true, "users": [{"userType": "staff", "userFullName": "No Employee ID"}]}`)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "employeeId")
}

func TestRegistrationSummary(t *testing.T) {
	result := &registrar.UserResult{
		Inserted: []entities.User{{AdmissionNo: "A1"}, {AdmissionNo: "A2"}},
		Skipped:  []registrar.SkippedUser{{Reason: "duplicate", AdmissionNo: "A3"}},
	}
	assert.Equal(t, "A1, A2", registrationSummary(result))

	result.Inserted = nil
	assert.Equal(t, "all candidates skipped", registrationSummary(result))
}

func TestSignIn_UnknownUser(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	w := server.request(t, "POST", "/auth/signin", `{"admissionNo": "missing", "password": "x"}`)
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, `"User not found"`, w.Body.String())
}

func TestSignIn_WrongPassword(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()
	server.seedUser(t, "A1", "test123")

	w := server.request(t, "POST", "/auth/signin", `{"admissionNo": "A1", "password": "nope"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, `"Wrong Password"`, w.Body.String())
}

func TestSignIn_Success(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()
	server.seedUser(t, "A1", "test123")

	w := server.request(t, "POST", "/auth/signin", `{"admissionNo": "A1", "password": "test123"}`)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"admissionNo":"A1"`)
	assert.NotContains(t, w.Body.String(), "$2a$")
}
