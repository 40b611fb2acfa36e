package models

// OverviewStats holds the entity counts for the dashboard overview.
type OverviewStats struct {
	Users       int64 `json:"users"`
	Teachers    int64 `json:"teachers"`
	Admins      int64 `json:"admins"`
	Subjects    int64 `json:"subjects"`
	Departments int64 `json:"departments"`
	Classes     int64 `json:"classes"`
}

// LatestStats holds the most recent classes and teachers.
type LatestStats struct {
	LatestClasses  []Class `json:"latestClasses"`
	LatestTeachers []User  `json:"latestTeachers"`
}

// RoleCount is one bucket of the users-by-role chart.
type RoleCount struct {
	Role  RoleType `json:"role"`
	Total int64    `json:"total"`
}

// DepartmentSubjectCount is one bucket of the subjects-by-department chart.
type DepartmentSubjectCount struct {
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	TotalSubjects  int64  `json:"totalSubjects"`
}

// SubjectClassCount is one bucket of the classes-by-subject chart.
type SubjectClassCount struct {
	SubjectID    int64  `json:"subjectId"`
	SubjectName  string `json:"subjectName"`
	TotalClasses int64  `json:"totalClasses"`
}

// ChartStats groups the aggregates served to dashboard charts.
type ChartStats struct {
	UsersByRole          []RoleCount              `json:"usersByRole"`
	SubjectsByDepartment []DepartmentSubjectCount `json:"subjectsByDepartment"`
	ClassesBySubject     []SubjectClassCount      `json:"classesBySubject"`
}
