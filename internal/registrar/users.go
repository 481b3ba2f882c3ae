package registrar

import (
	"encoding/json"
	"fmt"

	"github.com/veenadevi/tn-lms-backend/internal/auth"
	"github.com/veenadevi/tn-lms-backend/internal/database/users"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// UserInput is one candidate member record. Unlike books, isAdmin here is a
// stored attribute of the user, not an authorization claim; the batch
// authorization flag is read from the payload envelope only.
type UserInput struct {
	UserType     entities.UserType `json:"userType"`
	UserFullName string            `json:"userFullName"`
	AdmissionNo  string            `json:"admissionNo"`
	EmployeeID   string            `json:"employeeId"`
	ExamRollNo   string            `json:"studentExamRollNo"`
	ClassRollNo  string            `json:"studentClassRollNo"`
	Class        string            `json:"class"`
	Section      string            `json:"section"`
	Age          int               `json:"age"`
	DOB          string            `json:"dob"`
	Gender       string            `json:"gender"`
	Address      string            `json:"address"`
	MobileNumber string            `json:"mobileNumber"`
	Email        string            `json:"email"`
	Password     string            `json:"password"`
	IsAdmin      bool              `json:"isAdmin"`
}

// SkippedUser names a candidate that was not admitted and why.
type SkippedUser struct {
	Reason      string `json:"reason"`
	AdmissionNo string `json:"admissionNo"`
}

// UserResult reports a registration batch outcome.
type UserResult struct {
	Inserted []entities.User `json:"inserted"`
	Skipped  []SkippedUser   `json:"skipped"`
}

// UserRegistrar admits member batches keyed on admission number. The store's
// own identifier is used; no sequential numbering happens here.
type UserRegistrar struct {
	users           *users.Repository
	bcryptCost      int
	defaultPassword string
}

// NewUserRegistrar creates a user registrar.
func NewUserRegistrar(repo *users.Repository, bcryptCost int, defaultPassword string) *UserRegistrar {
	return &UserRegistrar{users: repo, bcryptCost: bcryptCost, defaultPassword: defaultPassword}
}

// NormalizeUserPayload flattens a single object, bare array, or {users:[…]}
// payload into candidate inputs. The authorization flag comes from the
// envelope only; item-level isAdmin is member data.
func NormalizeUserPayload(raw []byte) ([]UserInput, bool, error) {
	items, isAdmin, err := normalizeBatch(raw, "users", false)
	if err != nil {
		return nil, false, err
	}

	inputs := make([]UserInput, 0, len(items))
	for i, item := range items {
		var input UserInput
		if err := json.Unmarshal(item, &input); err != nil {
			return nil, false, fmt.Errorf("candidate %d: %w", i, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, isAdmin, nil
}

// Register admits a normalized batch. Duplicate detection considers the
// admission-number key only; employee ids are stored but never checked.
func (r *UserRegistrar) Register(inputs []UserInput, authorized bool) (*UserResult, error) {
	if !authorized {
		return nil, ErrNotAuthorized
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyPayload
	}

	if err := validateUsers(inputs); err != nil {
		return nil, err
	}

	admissionNos := make([]string, len(inputs))
	for i, input := range inputs {
		admissionNos[i] = input.AdmissionNo
	}

	existing, err := r.users.ExistingAdmissionNos(nonEmpty(admissionNos))
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing admission numbers: %w", err)
	}

	duplicate := PartitionByKey(admissionNos, existing)

	result := &UserResult{Inserted: []entities.User{}, Skipped: []SkippedUser{}}
	var toInsert []*entities.User
	for i, input := range inputs {
		if duplicate[i] {
			result.Skipped = append(result.Skipped, SkippedUser{
				Reason:      "duplicate",
				AdmissionNo: input.AdmissionNo,
			})
			continue
		}

		password := input.Password
		if password == "" {
			password = r.defaultPassword
		}
		hashed, err := auth.HashPassword(password, r.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", input.AdmissionNo, err)
		}

		toInsert = append(toInsert, &entities.User{
			UserType:     input.UserType,
			UserFullName: input.UserFullName,
			AdmissionNo:  input.AdmissionNo,
			EmployeeID:   input.EmployeeID,
			ExamRollNo:   input.ExamRollNo,
			ClassRollNo:  input.ClassRollNo,
			Class:        input.Class,
			Section:      input.Section,
			Age:          input.Age,
			DOB:          input.DOB,
			Gender:       input.Gender,
			Address:      input.Address,
			MobileNumber: input.MobileNumber,
			Email:        input.Email,
			Password:     hashed,
			IsAdmin:      input.IsAdmin,
		})
	}

	if err := r.users.InsertUsers(toInsert); err != nil {
		return nil, fmt.Errorf("failed to insert users: %w", err)
	}

	for _, user := range toInsert {
		result.Inserted = append(result.Inserted, *user)
	}
	return result, nil
}

func validateUsers(inputs []UserInput) error {
	for i, input := range inputs {
		if input.UserFullName == "" {
			return &ValidationError{Index: i, Field: "userFullName"}
		}
		switch input.UserType {
		case entities.UserTypeStudent:
			if input.AdmissionNo == "" {
				return &ValidationError{Index: i, Field: "admissionNo"}
			}
		case entities.UserTypeStaff:
			if input.EmployeeID == "" {
				return &ValidationError{Index: i, Field: "employeeId"}
			}
		default:
			return &ValidationError{Index: i, Field: "userType"}
		}
	}
	return nil
}

func nonEmpty(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			out = append(out, key)
		}
	}
	return out
}
