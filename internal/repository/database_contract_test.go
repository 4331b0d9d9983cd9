package repository_test

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edusync-api/internal/repository"
	"github.com/noah-isme/edusync-api/internal/repository/storagetest"
	"github.com/noah-isme/edusync-api/pkg/database"
)

const truncateAll = `TRUNCATE users, students, teachers, branches, sections, classes, subjects,
subject_assignments, attendance, assignments, submissions, messages, announcements,
resources, student_documents, timetable, tasks, sessions`

// Runs the shared storage contract against a real PostgreSQL database when
// EDUSYNC_TEST_DATABASE_URL is set.
func TestDatabaseStorageContract(t *testing.T) {
	dsn := os.Getenv("EDUSYNC_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("EDUSYNC_TEST_DATABASE_URL not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db.DB, zap.NewNop()))

	storagetest.Run(t, func(t *testing.T) repository.Storage {
		_, err := db.Exec(truncateAll)
		require.NoError(t, err)
		return repository.NewDatabaseStorage(db, nil)
	})
}
