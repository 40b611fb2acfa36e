package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/derin/classpanel/internal/app/models"
)

// Dataset is the declarative seed input. Rows reference each other through
// natural keys only; the loader resolves generated ids at run time.
type Dataset struct {
	Users       []SeedUser       `json:"users"`
	Departments []SeedDepartment `json:"departments"`
	Subjects    []SeedSubject    `json:"subjects"`
	Classes     []SeedClass      `json:"classes"`
	Enrollments []SeedEnrollment `json:"enrollments"`
}

// SeedUser is one user row. Password, when present, becomes a bcrypt
// credential account.
type SeedUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	Role          string `json:"role"`
	Password      string `json:"password,omitempty"`
}

// SeedDepartment is one department row keyed by code.
type SeedDepartment struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// SeedSubject is one subject row; departmentCode must name a department in
// the same dataset.
type SeedSubject struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	DepartmentCode string  `json:"departmentCode"`
}

// SeedClass is one class row; subjectCode must name a subject in the same
// dataset and teacherId a seeded user.
type SeedClass struct {
	InviteCode  string            `json:"inviteCode"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	SubjectCode string            `json:"subjectCode"`
	TeacherID   string            `json:"teacherId"`
	Capacity    int               `json:"capacity,omitempty"`
	Status      string            `json:"status,omitempty"`
	Schedules   []models.Schedule `json:"schedules,omitempty"`
}

// SeedEnrollment is one enrollment row; classInviteCode must name a class
// in the same dataset.
type SeedEnrollment struct {
	ClassInviteCode string `json:"classInviteCode"`
	StudentID       string `json:"studentId"`
}

// LoadFile reads and parses a dataset from a JSON file.
func LoadFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	dataset := &Dataset{}
	if err := json.Unmarshal(raw, dataset); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return dataset, nil
}
