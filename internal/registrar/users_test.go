package registrar

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veenadevi/tn-lms-backend/internal/auth"
	"github.com/veenadevi/tn-lms-backend/internal/database"
	"github.com/veenadevi/tn-lms-backend/internal/database/users"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

const testDefaultPassword = "test123"

func setupUserRegistrar(t *testing.T) (*UserRegistrar, *users.Repository, func()) {
	t.Helper()

	dbPath := "./test_users_registrar_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := users.NewRepository(db.DB)
	// MinCost keeps hashing fast in tests
	registrar := NewUserRegistrar(repo, 4, testDefaultPassword)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return registrar, repo, cleanup
}

func studentInput(admissionNo string) UserInput {
	return UserInput{
		UserType:     entities.UserTypeStudent,
		UserFullName: "Student " + admissionNo,
		AdmissionNo:  admissionNo,
	}
}

func TestUserRegistrar_DuplicateWithinBatch(t *testing.T) {
	registrar, _, cleanup := setupUserRegistrar(t)
	defer cleanup()

	result, err := registrar.Register([]UserInput{
		studentInput("A1"), studentInput("A1"),
	}, true)

	require.NoError(t, err)
	require.Len(t, result.Inserted, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "duplicate", result.Skipped[0].Reason)
	assert.Equal(t, "A1", result.Skipped[0].AdmissionNo)
}

func TestUserRegistrar_DuplicateAgainstStore(t *testing.T) {
	registrar, _, cleanup := setupUserRegistrar(t)
	defer cleanup()

	_, err := registrar.Register([]UserInput{studentInput("A1")}, true)
	require.NoError(t, err)

	result, err := registrar.Register([]UserInput{studentInput("A1"), studentInput("A2")}, true)
	require.NoError(t, err)
	require.Len(t, result.Inserted, 1)
	assert.Equal(t, "A2", result.Inserted[0].AdmissionNo)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "A1", result.Skipped[0].AdmissionNo)
}

func TestUserRegistrar_HashesDefaultPassword(t *testing.T) {
	registrar, repo, cleanup := setupUserRegistrar(t)
	defer cleanup()

	_, err := registrar.Register([]UserInput{studentInput("A1")}, true)
	require.NoError(t, err)

	stored, err := repo.GetUserByAdmissionNo("A1")
	require.NoError(t, err)
	assert.NotEqual(t, testDefaultPassword, stored.Password)
	assert.NoError(t, auth.CheckPassword(testDefaultPassword, stored.Password))
}

func TestUserRegistrar_HashesSuppliedPassword(t *testing.T) {
	registrar, repo, cleanup := setupUserRegistrar(t)
	defer cleanup()

	input := studentInput("A1")
	input.Password = "secret-enough"
	_, err := registrar.Register([]UserInput{input}, true)
	require.NoError(t, err)

	stored, err := repo.GetUserByAdmissionNo("A1")
	require.NoError(t, err)
	assert.NoError(t, auth.CheckPassword("secret-enough", stored.Password))
	assert.Error(t, auth.CheckPassword(testDefaultPassword, stored.Password))
}

func TestUserRegistrar_Unauthorized(t *testing.T) {
	registrar, repo, cleanup := setupUserRegistrar(t)
	defer cleanup()

	_, err := registrar.Register([]UserInput{studentInput("A1")}, false)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = repo.GetUserByAdmissionNo("A1")
	assert.Error(t, err)
}

func TestUserRegistrar_StaffRequiresEmployeeID(t *testing.T) {
	registrar, _, cleanup := setupUserRegistrar(t)
	defer cleanup()

	_, err := registrar.Register([]UserInput{{
		UserType:     entities.UserTypeStaff,
		UserFullName: "Staff Member",
	}}, true)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "employeeId", validation.Field)
}

func TestUserRegistrar_EmployeeIDsNotDeduplicated(t *testing.T) {
	registrar, _, cleanup := setupUserRegistrar(t)
	defer cleanup()

	staff := func(admissionNo string) UserInput {
		return UserInput{
			UserType:     entities.UserTypeStaff,
			UserFullName: "Staff " + admissionNo,
			AdmissionNo:  admissionNo,
			EmployeeID:   "E1",
		}
	}

	result, err := registrar.Register([]UserInput{staff("S1"), staff("S2")}, true)
	require.NoError(t, err)
	// Same employee id twice: both admitted, only admission numbers are keys.
	assert.Len(t, result.Inserted, 2)
	assert.Empty(t, result.Skipped)
}
