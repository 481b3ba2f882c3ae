package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veenadevi/tn-lms-backend/internal/audit"
	"github.com/veenadevi/tn-lms-backend/internal/auth"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
	"github.com/veenadevi/tn-lms-backend/internal/registrar"
)

// AuthController handles member registration and sign-in.
type AuthController struct {
	registrar *registrar.UserRegistrar
	service   *auth.Service
	auditor   *audit.Service
}

func NewAuthController(r *registrar.UserRegistrar, s *auth.Service, a *audit.Service) *AuthController {
	return &AuthController{registrar: r, service: s, auditor: a}
}

// Register admits a batch of members.
// POST /auth/register
func (controller *AuthController) Register(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondBadRequest(c, "failed to read request body")
		return
	}

	inputs, authorized, err := registrar.NormalizeUserPayload(raw)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := controller.registrar.Register(inputs, authorized)
	if err != nil {
		var validation *registrar.ValidationError
		switch {
		case errors.Is(err, registrar.ErrNotAuthorized):
			respondForbidden(c, "You dont have permission to register users!")
		case errors.Is(err, registrar.ErrEmptyPayload):
			respondBadRequest(c, "empty payload")
		case errors.As(err, &validation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user record", Details: validation.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to register users", Details: err.Error()})
		}
		return
	}

	controller.auditor.LogMutation(entities.AuditEventUserRegister, "user", nil,
		registrationSummary(result), c.ClientIP(), nil)
	c.JSON(http.StatusOK, result)
}

type signInRequest struct {
	AdmissionNo string `json:"admissionNo"`
	Password    string `json:"password"`
}

// SignIn verifies credentials. Each failure short-circuits; the success
// response carries the user record with the password hash redacted.
// POST /auth/signin
func (controller *AuthController) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.AdmissionNo == "" {
		respondBadRequest(c, "admissionNo is required")
		return
	}

	user, err := controller.service.SignIn(req.AdmissionNo, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserNotFound):
			c.JSON(http.StatusNotFound, "User not found")
		case errors.Is(err, auth.ErrInvalidPassword):
			controller.auditor.LogMutation(entities.AuditEventSignInFailed, "user", nil,
				"wrong password for "+req.AdmissionNo, c.ClientIP(), err)
			c.JSON(http.StatusBadRequest, "Wrong Password")
		default:
			respondInternalError(c, err, "signin")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

func registrationSummary(result *registrar.UserResult) string {
	if len(result.Inserted) == 0 {
		return "all candidates skipped"
	}
	admitted := make([]string, 0, len(result.Inserted))
	for _, user := range result.Inserted {
		admitted = append(admitted, user.AdmissionNo)
	}
	return strings.Join(admitted, ", ")
}
