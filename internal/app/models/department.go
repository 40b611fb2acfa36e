package models

import "time"

// Department represents an academic department. The code column is the
// natural key used by the seed loader.
type Department struct {
	ID          int64     `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// DepartmentWithTotals is a department row decorated with the subject count
// computed by the list query's left join.
type DepartmentWithTotals struct {
	Department
	TotalSubjects int64 `json:"totalSubjects"`
}

// DepartmentTotals carries the derived counts for the department detail view.
type DepartmentTotals struct {
	Subjects         int64 `json:"subjects"`
	Classes          int64 `json:"classes"`
	EnrolledStudents int64 `json:"enrolledStudents"`
}
