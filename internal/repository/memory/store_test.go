package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/internal/repository"
	"github.com/noah-isme/edusync-api/internal/repository/storagetest"
)

func TestStoreContract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) repository.Storage { return New() })
}

func TestStoreIDsStartAtOnePerEntity(t *testing.T) {
	ctx := context.Background()
	s := New()

	b, err := s.CreateBranch(ctx, models.Branch{Name: "CSE"})
	require.NoError(t, err)
	sec, err := s.CreateSection(ctx, models.Section{Name: "Section A"})
	require.NoError(t, err)
	b2, err := s.CreateBranch(ctx, models.Branch{Name: "ECE"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, int64(1), sec.ID)
	assert.Equal(t, int64(2), b2.ID)
}

func TestStoreGeneratedTimestamps(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2023, 8, 7, 9, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))

	u, err := s.CreateUser(ctx, models.User{Email: "a@edusync.com", CreatedAt: time.Unix(0, 0)})
	require.NoError(t, err)
	assert.Equal(t, fixed, u.CreatedAt)

	sub, err := s.CreateSubmission(ctx, models.Submission{AssignmentID: 1, StudentID: 1})
	require.NoError(t, err)
	assert.Equal(t, fixed, sub.SubmittedAt)
	assert.Equal(t, models.SubmissionSubmitted, sub.Status)

	msg, err := s.CreateMessage(ctx, models.Message{SenderID: 1, ReceiverID: 2, Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, fixed, msg.SentAt)
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()
	created, err := s.CreateSection(ctx, models.Section{Name: "Section A"})
	require.NoError(t, err)

	created.Name = "mutated"
	got, err := s.GetSection(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Section A", got.Name)
}

func TestStoreDoesNotAliasOptionalFields(t *testing.T) {
	ctx := context.Background()
	s := New()
	desc := "Algebra and geometry"
	created, err := s.CreateSubject(ctx, models.Subject{Name: "Maths", Code: "M1", Description: &desc})
	require.NoError(t, err)

	desc = "changed after create"
	*created.Description = "changed via created record"
	got, err := s.GetSubject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra and geometry", *got.Description)

	*got.Description = "changed via fetched record"
	listed, err := s.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Algebra and geometry", *listed[0].Description)

	*listed[0].Description = "changed via list"
	patched, err := s.UpdateSubject(ctx, created.ID, models.SubjectPatch{Name: ptr("Mathematics")})
	require.NoError(t, err)
	*patched.Description = "changed via patched record"
	got, err = s.GetSubject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra and geometry", *got.Description)
	assert.Equal(t, "Mathematics", got.Name)

	docs := models.EmptyDocuments()
	st, err := s.CreateStudent(ctx, models.Student{UserID: 1, StudentID: "ST1", YearLevel: 1, BranchID: 1, SectionID: 1, Documents: docs})
	require.NoError(t, err)
	docs[0] = 'x'
	st.Documents[0] = 'y'
	stored, err := s.GetStudent(ctx, st.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(models.EmptyDocuments()), string(stored.Documents))
}

func ptr[T any](v T) *T { return &v }

func TestStoreConcurrentCreatesGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s := New()
	const n = 50

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task, err := s.CreateTask(ctx, models.Task{UserID: 1, Title: "t"})
			if err == nil {
				ids <- task.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestStoreAnnouncementsByClass(t *testing.T) {
	ctx := context.Background()
	s := New()
	classID := int64(3)
	_, err := s.CreateAnnouncement(ctx, models.Announcement{UserID: 1, Title: "A", Content: "x", TargetClassID: &classID})
	require.NoError(t, err)
	_, err = s.CreateAnnouncement(ctx, models.Announcement{UserID: 1, Title: "B", Content: "y"})
	require.NoError(t, err)

	list, err := s.ListAnnouncementsByClass(ctx, classID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Title)
}
