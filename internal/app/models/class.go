package models

import "time"

// ClassStatus enumerates the lifecycle states of a class.
type ClassStatus string

const (
	ClassActive   ClassStatus = "active"
	ClassInactive ClassStatus = "inactive"
	ClassArchived ClassStatus = "archived"
)

// Schedule is one meeting slot of a class. Slot order is preserved as
// authored but carries no meaning.
type Schedule struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Class represents a class taught by one teacher for one subject. The
// invite code is the natural key used for self-service enrollment and by
// the seed loader.
type Class struct {
	ID             int64       `json:"id" db:"id"`
	SubjectID      int64       `json:"subjectId" db:"subject_id"`
	TeacherID      string      `json:"teacherId" db:"teacher_id"`
	InviteCode     string      `json:"inviteCode" db:"invite_code"`
	Name           string      `json:"name" db:"name"`
	Description    *string     `json:"description,omitempty" db:"description"`
	Capacity       int         `json:"capacity" db:"capacity"`
	Status         ClassStatus `json:"status" db:"status"`
	BannerURL      *string     `json:"bannerUrl,omitempty" db:"banner_url"`
	BannerCldPubID *string     `json:"bannerCldPubId,omitempty" db:"banner_cld_pub_id"`
	Schedules      []Schedule  `json:"schedules" db:"schedules"`
	CreatedAt      time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time   `json:"updatedAt" db:"updated_at"`
	Subject        *Subject    `json:"subject,omitempty"`
	Department     *Department `json:"department,omitempty"`
	Teacher        *User       `json:"teacher,omitempty"`
}
