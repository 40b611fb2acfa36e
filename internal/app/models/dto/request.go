package dto

// CreateDepartmentRequest is the body of POST /api/departments.
type CreateDepartmentRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// CreateClassRequest is the body of POST /api/classes. The invite code and
// schedules are never taken from the client; the service assigns them.
type CreateClassRequest struct {
	SubjectID   int64   `json:"subjectId" binding:"required"`
	TeacherID   string  `json:"teacherId" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status"`
	BannerURL   *string `json:"bannerUrl"`
}

// CreateEnrollmentRequest is the body of POST /api/enrollments.
type CreateEnrollmentRequest struct {
	ClassID   int64  `json:"classId"`
	StudentID string `json:"studentId"`
}

// JoinClassRequest is the body of POST /api/enrollments/join.
type JoinClassRequest struct {
	InviteCode string `json:"inviteCode"`
	StudentID  string `json:"studentId"`
}
