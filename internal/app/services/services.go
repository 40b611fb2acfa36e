// Package services contains the business logic between controllers and
// repositories. Services depend on the repository interfaces so tests can
// substitute in-memory fakes.
package services

import (
	"github.com/derin/classpanel/internal/app/repositories"
)

// Services holds all the service instances
type Services struct {
	DepartmentService *DepartmentService
	SubjectService    *SubjectService
	ClassService      *ClassService
	UserService       *UserService
	EnrollmentService *EnrollmentService
	StatsService      *StatsService
}

// NewServices initializes all services with their dependencies
func NewServices(repos *repositories.Repositories) *Services {
	return &Services{
		DepartmentService: NewDepartmentService(
			repos.DepartmentRepository,
			repos.SubjectRepository,
			repos.ClassRepository,
			repos.UserRepository,
		),
		SubjectService:    NewSubjectService(repos.SubjectRepository),
		ClassService:      NewClassService(repos.ClassRepository, repos.SubjectRepository, repos.UserRepository),
		UserService:       NewUserService(repos.UserRepository),
		EnrollmentService: NewEnrollmentService(repos.EnrollmentRepository, repos.ClassRepository, repos.UserRepository),
		StatsService:      NewStatsService(repos.StatsRepository),
	}
}
