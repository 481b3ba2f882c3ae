package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/veenadevi/tn-lms-backend/internal/auth"
	"github.com/veenadevi/tn-lms-backend/internal/config"
	"github.com/veenadevi/tn-lms-backend/internal/database"
	"github.com/veenadevi/tn-lms-backend/internal/database/users"
	"github.com/veenadevi/tn-lms-backend/internal/entities"
)

// CreateAdminCommand provisions an administrator account directly in the
// database, bypassing the HTTP registration path.
type CreateAdminCommand struct {
	DatabasePath string
	FullName     string
	AdmissionNo  string
	EmployeeID   string
	Password     string
	BcryptCost   int
}

func NewCreateAdminCommand() *CreateAdminCommand {
	return &CreateAdminCommand{}
}

func (cmd *CreateAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the application database file")
	fs.StringVar(&cmd.FullName, "name", "", "Full name of the administrator (required)")
	fs.StringVar(&cmd.AdmissionNo, "admission", "", "Admission number the administrator signs in with (required)")
	fs.StringVar(&cmd.EmployeeID, "employee", "", "Employee id to record on the account")
	fs.StringVar(&cmd.Password, "password", "", "Plaintext password, hashed before storage (required)")
	fs.IntVar(&cmd.BcryptCost, "cost", 10, "Bcrypt cost factor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-admin -name <name> -admission <no> -password <pw> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account in the local database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FullName == "" {
		return fmt.Errorf("required flag -name not provided")
	}
	if cmd.AdmissionNo == "" {
		return fmt.Errorf("required flag -admission not provided")
	}
	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}

	return nil
}

func (cmd *CreateAdminCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := users.NewRepository(db.DB)

	if _, err := repo.GetUserByAdmissionNo(cmd.AdmissionNo); err == nil {
		return fmt.Errorf("a user with admission number %s already exists", cmd.AdmissionNo)
	}

	hashed, err := auth.HashPassword(cmd.Password, cmd.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		UserType:     entities.UserTypeStaff,
		UserFullName: cmd.FullName,
		AdmissionNo:  cmd.AdmissionNo,
		EmployeeID:   cmd.EmployeeID,
		Password:     hashed,
		IsAdmin:      true,
	}
	if err := repo.CreateUser(user); err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	fmt.Printf("Created administrator %s (admission number %s)\n", cmd.FullName, cmd.AdmissionNo)
	return nil
}
