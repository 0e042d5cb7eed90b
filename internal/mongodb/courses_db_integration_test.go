//go:build integration

package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/lealre/courses-backend/internal/testinfra"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testinfra.Terminate()
	os.Exit(code)
}

func newTestDB(t *testing.T) *DB {
	t.Helper()

	client, _ := testinfra.SharedMongo(t)
	return NewDB(client, testinfra.DatabaseName(t, client))
}

func addTestCourse(t *testing.T, db *DB, course CourseDb) CourseDb {
	t.Helper()

	added, err := db.AddCourse(context.Background(), course)
	require.NoError(t, err)
	return added
}

func TestGetCourseById(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	added := addTestCourse(t, db, CourseDb{
		Name:     "Linear Algebra",
		Date:     time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC),
		Domain:   []string{"mathematics"},
		Chapters: []ChapterDb{{Name: "Vectors", Text: "arrows"}, {Name: "Matrices", Text: "grids"}},
	})

	course, err := db.GetCourseById(ctx, added.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, "Linear Algebra", course.Name)
	require.Equal(t, time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC), course.Date.UTC())
	require.Equal(t, []string{"Vectors", "Matrices"}, []string{course.Chapters[0].Name, course.Chapters[1].Name})

	_, err = db.GetCourseById(ctx, primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrRecordNotFound)

	_, err = db.GetCourseById(ctx, "123")
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetCourses(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	addTestCourse(t, db, CourseDb{Name: "B", Date: time.Unix(200, 0), Domain: []string{"x"}, Rating: 3})
	addTestCourse(t, db, CourseDb{Name: "A", Date: time.Unix(100, 0), Domain: []string{"y", "x"}, Rating: -1})
	addTestCourse(t, db, CourseDb{Name: "C", Date: time.Unix(300, 0), Domain: []string{"y"}, Rating: 1})

	courseNames := func(query CourseQuery) []string {
		courses, err := db.GetCourses(ctx, query)
		require.NoError(t, err)
		result := make([]string, len(courses))
		for i, c := range courses {
			result[i] = c.Name
		}
		return result
	}

	require.Equal(t, []string{"A", "B", "C"}, courseNames(CourseQuery{}))
	require.Equal(t, []string{"A", "B", "C"}, courseNames(CourseQuery{SortField: "name"}))
	require.Equal(t, []string{"C", "B", "A"}, courseNames(CourseQuery{SortField: "date", Descending: true}))
	require.Equal(t, []string{"B", "C", "A"}, courseNames(CourseQuery{SortField: "rating", Descending: true}))
	require.Equal(t, []string{"A", "B"}, courseNames(CourseQuery{Domain: "x"}))
	require.Equal(t, []string{}, courseNames(CourseQuery{Domain: "z"}))
}

func TestUpdateChapterRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	added := addTestCourse(t, db, CourseDb{
		Name:     "Physics",
		Chapters: []ChapterDb{{Name: "Motion"}, {Name: "Energy"}},
	})
	id := added.ID.Hex()

	require.NoError(t, db.UpdateChapterRating(ctx, id, "Energy", 1))

	course, err := db.GetCourseById(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 0, course.Chapters[0].Rating)
	require.Equal(t, 1, course.Chapters[1].Rating)

	t.Run("Same value modifies nothing", func(t *testing.T) {
		require.ErrorIs(t, db.UpdateChapterRating(ctx, id, "Energy", 1), ErrNoDocumentModified)
	})

	t.Run("Unknown chapter modifies nothing", func(t *testing.T) {
		require.ErrorIs(t, db.UpdateChapterRating(ctx, id, "Waves", 1), ErrNoDocumentModified)
	})

	t.Run("Malformed id", func(t *testing.T) {
		require.ErrorIs(t, db.UpdateChapterRating(ctx, "nope", "Energy", 0), ErrRecordNotFound)
	})
}

func TestUpdateCourseRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	added := addTestCourse(t, db, CourseDb{Name: "Chemistry"})

	require.NoError(t, db.UpdateCourseRating(ctx, added.ID.Hex(), 4))
	course, err := db.GetCourseById(ctx, added.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, 4, course.Rating)

	// Setting the same aggregate again is not an error.
	require.NoError(t, db.UpdateCourseRating(ctx, added.ID.Hex(), 4))

	require.ErrorIs(t, db.UpdateCourseRating(ctx, primitive.NewObjectID().Hex(), 1), ErrRecordNotFound)
}

func TestCourseIndexes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateCourseIndexes(ctx, false))
	// Running again skips existing indexes, reset recreates them.
	require.NoError(t, db.CreateCourseIndexes(ctx, false))
	require.NoError(t, db.CreateCourseIndexes(ctx, true))

	names, err := db.ListCourseIndexes(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"_id_", CourseNameIndex, CourseDateIndex, CourseDomainIndex, CourseChapterNameIndex}, names)

	addTestCourse(t, db, CourseDb{Name: "Unique"})
	_, err = db.AddCourse(ctx, CourseDb{Name: "Unique"})
	require.True(t, mongo.IsDuplicateKeyError(err))

	count, err := db.CountCourses(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	require.NoError(t, db.DeleteAllIndexes(ctx))
	names, err = db.ListCourseIndexes(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"_id_"}, names)
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Ping(context.Background()))
}
