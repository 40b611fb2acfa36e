package models

import "time"

// Subject represents a subject taught within a department.
type Subject struct {
	ID           int64       `json:"id" db:"id"`
	DepartmentID int64       `json:"departmentId" db:"department_id"`
	Code         string      `json:"code" db:"code"`
	Name         string      `json:"name" db:"name"`
	Description  *string     `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" db:"updated_at"`
	Department   *Department `json:"department,omitempty"`
}
