package models

// Enrollment links a student to a class. The (studentId, classId) pair is
// unique; at most one enrollment per student per class.
type Enrollment struct {
	StudentID string `json:"studentId" db:"student_id"`
	ClassID   int64  `json:"classId" db:"class_id"`
}

// EnrollmentDetail is the fully joined view returned after a successful
// enrollment: the pair plus class, subject, department and teacher.
type EnrollmentDetail struct {
	Enrollment
	Class      *Class      `json:"class,omitempty"`
	Subject    *Subject    `json:"subject,omitempty"`
	Department *Department `json:"department,omitempty"`
	Teacher    *User       `json:"teacher,omitempty"`
}
