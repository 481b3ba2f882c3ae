package entities

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeStudent UserType = "student"
	UserTypeStaff   UserType = "staff"
)

// User is a library member. Students are identified by admission number,
// staff by employee id. The password column always holds a bcrypt hash and
// is never serialized.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserType       UserType       `gorm:"size:16" json:"userType"`
	UserFullName   string         `gorm:"size:256" json:"userFullName"`
	AdmissionNo    string         `gorm:"index;size:64" json:"admissionNo,omitempty"`
	EmployeeID     string         `gorm:"size:64" json:"employeeId,omitempty"`
	ExamRollNo     string         `gorm:"size:64" json:"studentExamRollNo,omitempty"`
	ClassRollNo    string         `gorm:"size:64" json:"studentClassRollNo,omitempty"`
	Class          string         `gorm:"size:64" json:"class,omitempty"`
	Section        string         `gorm:"size:16" json:"section,omitempty"`
	Age            int            `json:"age,omitempty"`
	DOB            string         `gorm:"size:32" json:"dob,omitempty"`
	Gender         string         `gorm:"size:16" json:"gender,omitempty"`
	Address        string         `gorm:"size:512" json:"address,omitempty"`
	MobileNumber   string         `gorm:"size:32" json:"mobileNumber,omitempty"`
	Email          string         `gorm:"size:255" json:"email,omitempty"`
	Password       string         `gorm:"size:128" json:"-"`
	IsAdmin        bool           `gorm:"default:false" json:"isAdmin"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}
