package seed

import (
	"context"
	"strings"
	"testing"

	"github.com/derin/classpanel/internal/app/models"
)

// Small in-memory stores mirroring the conflict-skip behavior of the real
// repositories.

type fakeUserStore struct {
	users    map[string]models.User
	accounts map[string]models.Account
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}, accounts: map[string]models.Account{}}
}

func (f *fakeUserStore) DeleteAll(ctx context.Context) error {
	f.users = map[string]models.User{}
	return nil
}
func (f *fakeUserStore) DeleteAllSessions(ctx context.Context) error { return nil }
func (f *fakeUserStore) DeleteAllAccounts(ctx context.Context) error {
	f.accounts = map[string]models.Account{}
	return nil
}
func (f *fakeUserStore) InsertIgnoreConflicts(ctx context.Context, users []models.User) error {
	for _, user := range users {
		if _, ok := f.users[user.ID]; !ok {
			f.users[user.ID] = user
		}
	}
	return nil
}
func (f *fakeUserStore) InsertAccountsIgnoreConflicts(ctx context.Context, accounts []models.Account) error {
	for _, account := range accounts {
		key := account.ProviderID + "/" + account.AccountID
		if _, ok := f.accounts[key]; !ok {
			f.accounts[key] = account
		}
	}
	return nil
}

type codeRow struct {
	id   int64
	name string
}

type fakeCodeStore struct {
	rows   map[string]codeRow
	nextID int64
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{rows: map[string]codeRow{}, nextID: 1}
}

func (f *fakeCodeStore) DeleteAll(ctx context.Context) error {
	f.rows = map[string]codeRow{}
	return nil
}
func (f *fakeCodeStore) insert(code, name string) {
	if _, ok := f.rows[code]; ok {
		return
	}
	f.rows[code] = codeRow{id: f.nextID, name: name}
	f.nextID++
}
func (f *fakeCodeStore) MapCodesToIDs(ctx context.Context, codes []string) (map[string]int64, error) {
	result := map[string]int64{}
	for _, code := range codes {
		if row, ok := f.rows[code]; ok {
			result[code] = row.id
		}
	}
	return result, nil
}

type fakeDepartmentStore struct{ *fakeCodeStore }

func (f fakeDepartmentStore) InsertIgnoreConflicts(ctx context.Context, depts []models.Department) error {
	for _, dept := range depts {
		f.insert(dept.Code, dept.Name)
	}
	return nil
}

type fakeSubjectStore struct {
	*fakeCodeStore
	departmentOf map[string]int64
}

func (f *fakeSubjectStore) InsertIgnoreConflicts(ctx context.Context, subjects []models.Subject) error {
	for _, subject := range subjects {
		f.insert(subject.Code, subject.Name)
		f.departmentOf[subject.Code] = subject.DepartmentID
	}
	return nil
}

type fakeClassStore struct{ *fakeCodeStore }

func (f fakeClassStore) InsertIgnoreConflicts(ctx context.Context, classes []models.Class) error {
	for _, class := range classes {
		f.insert(class.InviteCode, class.Name)
	}
	return nil
}
func (f fakeClassStore) MapInviteCodesToIDs(ctx context.Context, inviteCodes []string) (map[string]int64, error) {
	return f.MapCodesToIDs(context.Background(), inviteCodes)
}

type fakeEnrollmentStore struct {
	pairs map[models.Enrollment]bool
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{pairs: map[models.Enrollment]bool{}}
}

func (f *fakeEnrollmentStore) DeleteAll(ctx context.Context) error {
	f.pairs = map[models.Enrollment]bool{}
	return nil
}
func (f *fakeEnrollmentStore) InsertIgnoreConflicts(ctx context.Context, enrollments []models.Enrollment) error {
	for _, enrollment := range enrollments {
		f.pairs[enrollment] = true
	}
	return nil
}

type fixture struct {
	loader      *Loader
	users       *fakeUserStore
	departments fakeDepartmentStore
	subjects    *fakeSubjectStore
	classes     fakeClassStore
	enrollments *fakeEnrollmentStore
}

func newFixture() *fixture {
	users := newFakeUserStore()
	departments := fakeDepartmentStore{newFakeCodeStore()}
	subjects := &fakeSubjectStore{fakeCodeStore: newFakeCodeStore(), departmentOf: map[string]int64{}}
	classes := fakeClassStore{newFakeCodeStore()}
	enrollments := newFakeEnrollmentStore()
	return &fixture{
		loader: &Loader{
			users:       users,
			departments: departments,
			subjects:    subjects,
			classes:     classes,
			enrollments: enrollments,
		},
		users:       users,
		departments: departments,
		subjects:    subjects,
		classes:     classes,
		enrollments: enrollments,
	}
}

func sampleDataset() *Dataset {
	return &Dataset{
		Users: []SeedUser{
			{ID: "tch1", Name: "Grace", Email: "grace@example.edu", Role: "teacher", Password: "pw"},
			{ID: "stu1", Name: "Ada", Email: "ada@example.edu", Role: "student", Password: "pw"},
		},
		Departments: []SeedDepartment{
			{Code: "CS", Name: "Computer Science"},
		},
		Subjects: []SeedSubject{
			{Code: "CS101", Name: "Intro", DepartmentCode: "CS"},
		},
		Classes: []SeedClass{
			{InviteCode: "ABC123", Name: "Morning", SubjectCode: "CS101", TeacherID: "tch1"},
		},
		Enrollments: []SeedEnrollment{
			{ClassInviteCode: "ABC123", StudentID: "stu1"},
		},
	}
}

func TestSeedResolvesNaturalKeys(t *testing.T) {
	fx := newFixture()
	if err := fx.loader.Run(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	deptIDs, _ := fx.departments.MapCodesToIDs(context.Background(), []string{"CS"})
	if fx.subjects.departmentOf["CS101"] != deptIDs["CS"] {
		t.Fatalf("subject CS101 resolved to department %d, want %d",
			fx.subjects.departmentOf["CS101"], deptIDs["CS"])
	}

	classIDs, _ := fx.classes.MapInviteCodesToIDs(context.Background(), []string{"ABC123"})
	want := models.Enrollment{StudentID: "stu1", ClassID: classIDs["ABC123"]}
	if !fx.enrollments.pairs[want] {
		t.Fatalf("enrollment %+v missing after seed", want)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	fx := newFixture()
	dataset := sampleDataset()
	ctx := context.Background()

	if err := fx.loader.Run(ctx, dataset); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	firstUsers := len(fx.users.users)
	firstAccounts := len(fx.users.accounts)
	firstDepartments := len(fx.departments.rows)
	firstSubjects := len(fx.subjects.rows)
	firstClasses := len(fx.classes.rows)
	firstEnrollments := len(fx.enrollments.pairs)

	if err := fx.loader.Run(ctx, dataset); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if len(fx.users.users) != firstUsers ||
		len(fx.users.accounts) != firstAccounts ||
		len(fx.departments.rows) != firstDepartments ||
		len(fx.subjects.rows) != firstSubjects ||
		len(fx.classes.rows) != firstClasses ||
		len(fx.enrollments.pairs) != firstEnrollments {
		t.Fatal("second run changed row counts")
	}
}

func TestSeedFailsFastOnUnknownDepartmentCode(t *testing.T) {
	fx := newFixture()
	dataset := sampleDataset()
	dataset.Subjects[0].DepartmentCode = "NOPE"

	err := fx.loader.Run(context.Background(), dataset)
	if err == nil {
		t.Fatal("expected an error for unknown department code")
	}
	if !strings.Contains(err.Error(), "NOPE") {
		t.Fatalf("error should name the missing code, got: %v", err)
	}
	if len(fx.classes.rows) != 0 || len(fx.enrollments.pairs) != 0 {
		t.Fatal("later phases must not run after a resolution failure")
	}
}

func TestSeedFailsFastOnUnknownInviteCode(t *testing.T) {
	fx := newFixture()
	dataset := sampleDataset()
	dataset.Enrollments[0].ClassInviteCode = "GHOST77"

	err := fx.loader.Run(context.Background(), dataset)
	if err == nil {
		t.Fatal("expected an error for unknown invite code")
	}
	if !strings.Contains(err.Error(), "GHOST77") {
		t.Fatalf("error should name the missing invite code, got: %v", err)
	}
}

func TestSeedHashesCredentialPasswords(t *testing.T) {
	fx := newFixture()
	if err := fx.loader.Run(context.Background(), sampleDataset()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	account, ok := fx.users.accounts["credential/tch1"]
	if !ok {
		t.Fatal("credential account for tch1 missing")
	}
	if account.Password == nil || *account.Password == "pw" {
		t.Fatal("password must be stored hashed, not in the clear")
	}
}
