package models

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestUserPatchApply(t *testing.T) {
	u := User{ID: 1, Email: "a@edusync.com", FirstName: "A", LastName: "B", Role: RoleStudent, Status: StatusPending}
	img := "https://img.test/a.png"
	status := StatusApproved
	UserPatch{Status: &status, ProfileImage: &img}.Apply(&u)

	assert.Equal(t, StatusApproved, u.Status)
	assert.Equal(t, "a@edusync.com", u.Email)
	img = "changed"
	assert.Equal(t, "https://img.test/a.png", *u.ProfileImage)
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{FirstName: strPtr("x")}.IsEmpty())
	assert.True(t, StudentPatch{}.IsEmpty())
	assert.True(t, TaskPatch{}.IsEmpty())
}

func TestStudentPatchCopiesDocuments(t *testing.T) {
	s := Student{Documents: EmptyDocuments()}
	docs := types.JSONText(`{"id":"x"}`)
	StudentPatch{Documents: &docs}.Apply(&s)
	docs[2] = 'X'
	assert.Equal(t, `{"id":"x"}`, s.Documents.String())
}

func TestStudentInClass(t *testing.T) {
	c := Class{YearLevel: 1, BranchID: 2, SectionID: 3}
	assert.True(t, Student{YearLevel: 1, BranchID: 2, SectionID: 3}.InClass(c))
	assert.False(t, Student{YearLevel: 2, BranchID: 2, SectionID: 3}.InClass(c))
	assert.False(t, Student{YearLevel: 1, BranchID: 2, SectionID: 4}.InClass(c))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2023, 8, 7, 23, 30, 0, 0, time.UTC)
	b := time.Date(2023, 8, 7, 1, 0, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, a.Add(time.Hour)))
}

func TestAttendanceStatsAdd(t *testing.T) {
	var s AttendanceStats
	for _, st := range []AttendanceStatus{AttendancePresent, AttendancePresent, AttendanceAbsent, AttendanceLate} {
		s.Add(st)
	}
	assert.Equal(t, AttendanceStats{Present: 2, Absent: 1, Late: 1, Total: 4}, s)
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
}

func TestPrincipalHasRole(t *testing.T) {
	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.HasRole(RoleAdmin))
	p := &Principal{User: User{Role: RoleTeacher}}
	assert.True(t, p.HasRole(RoleAdmin, RoleTeacher))
	assert.False(t, p.HasRole(RoleStudent))
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Maureen Smith", User{FirstName: "Maureen", LastName: "Smith"}.FullName())
	assert.Equal(t, "Admin", User{FirstName: "Admin"}.FullName())
}
