package auth

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/veenadevi/tn-lms-backend/internal/database"
	"github.com/veenadevi/tn-lms-backend/internal/database/users"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

func setupAuthService(t *testing.T) (*Service, func()) {
	t.Helper()

	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	repo := users.NewRepository(db.DB)
	hash, err := HashPassword("test123", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.CreateUser(&entities.User{
		UserType:     entities.UserTypeStudent,
		UserFullName: "Known Student",
		AdmissionNo:  "A1",
		Password:     hash,
	}))

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewService(repo), cleanup
}

func TestSignIn_UnknownUser(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.SignIn("missing", "test123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSignIn_WrongPassword(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.SignIn("A1", "nope")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestSignIn_Success(t *testing.T) {
	service, cleanup := setupAuthService(t)
	defer cleanup()

	user, err := service.SignIn("A1", "test123")
	require.NoError(t, err)
	assert.Equal(t, "Known Student", user.UserFullName)
	assert.Equal(t, "A1", user.AdmissionNo)
}
