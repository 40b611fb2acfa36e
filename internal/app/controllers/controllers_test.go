package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/derin/classpanel/internal/app/controllers"
	"github.com/derin/classpanel/internal/app/routes"
	"github.com/derin/classpanel/internal/app/services"
)

// The routes under test here reject the request before any service call,
// so the controllers can be wired with zero-value services.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRouter(router,
		controllers.NewDepartmentController(&services.DepartmentService{}),
		controllers.NewSubjectController(&services.SubjectService{}),
		controllers.NewClassController(&services.ClassService{}),
		controllers.NewUserController(&services.UserService{}),
		controllers.NewEnrollmentController(&services.EnrollmentService{}),
		controllers.NewStatsController(&services.StatsService{}),
	)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetDepartmentRejectsNonNumericID(t *testing.T) {
	rec := perform(newTestRouter(), http.MethodGet, "/api/departments/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid department ID")
}

func TestGetClassRejectsNonNumericID(t *testing.T) {
	rec := perform(newTestRouter(), http.MethodGet, "/api/classes/xyz", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDepartmentUsersRequiresValidRole(t *testing.T) {
	router := newTestRouter()

	rec := perform(router, http.MethodGet, "/api/departments/1/users", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(router, http.MethodGet, "/api/departments/1/users?role=admin", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "teacher or student")
}

func TestCreateDepartmentRequiresCodeAndName(t *testing.T) {
	rec := perform(newTestRouter(), http.MethodPost, "/api/departments", `{"name":"CS"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEnrollmentRequiresFields(t *testing.T) {
	router := newTestRouter()

	rec := perform(router, http.MethodPost, "/api/enrollments", `{"classId":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(router, http.MethodPost, "/api/enrollments/join", `{"studentId":"stu1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthGroupAnswersNotImplemented(t *testing.T) {
	rec := perform(newTestRouter(), http.MethodPost, "/api/auth/login", `{}`)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestWelcomeRoute(t *testing.T) {
	rec := perform(newTestRouter(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ClassPanel")
}
