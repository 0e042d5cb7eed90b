// Package coursestest provides an in-memory courses.Store for tests.
package coursestest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/lealre/courses-backend/internal/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore mimics the MongoDB semantics the course service relies on:
// malformed ids are not found, a positional update touches the first chapter
// with the given name, and a write that changes nothing reports
// mongodb.ErrNoDocumentModified.
type MemoryStore struct {
	mu      sync.Mutex
	courses map[primitive.ObjectID]mongodb.CourseDb
	calls   int

	// Set these to force the matching operation to fail.
	GetCoursesErr          error
	UpdateChapterRatingErr error
	UpdateCourseRatingErr  error
}

func NewMemoryStore(courses ...mongodb.CourseDb) *MemoryStore {
	store := &MemoryStore{courses: map[primitive.ObjectID]mongodb.CourseDb{}}
	for _, course := range courses {
		store.Add(course)
	}
	return store
}

// Add stores a copy of course, assigning an id when it has none.
func (s *MemoryStore) Add(course mongodb.CourseDb) mongodb.CourseDb {
	s.mu.Lock()
	defer s.mu.Unlock()

	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	s.courses[course.ID] = cloneCourse(course)
	return cloneCourse(course)
}

// Calls returns how many store operations have been invoked.
func (s *MemoryStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *MemoryStore) GetCourseById(ctx context.Context, id string) (mongodb.CourseDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return mongodb.CourseDb{}, mongodb.ErrRecordNotFound
	}
	course, ok := s.courses[objectId]
	if !ok {
		return mongodb.CourseDb{}, mongodb.ErrRecordNotFound
	}
	return cloneCourse(course), nil
}

func (s *MemoryStore) GetCourses(ctx context.Context, query mongodb.CourseQuery) ([]mongodb.CourseDb, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.GetCoursesErr != nil {
		return nil, s.GetCoursesErr
	}

	result := []mongodb.CourseDb{}
	for _, course := range s.courses {
		if query.Domain != "" && !contains(course.Domain, query.Domain) {
			continue
		}
		result = append(result, cloneCourse(course))
	}

	// Map iteration is random; order by id first so ties are deterministic.
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID.Hex() < result[j].ID.Hex()
	})
	sort.SliceStable(result, func(i, j int) bool {
		c := compare(result[i], result[j], query.SortField)
		if query.Descending {
			return c > 0
		}
		return c < 0
	})

	return result, nil
}

func (s *MemoryStore) UpdateChapterRating(ctx context.Context, courseId, chapterName string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.UpdateChapterRatingErr != nil {
		return s.UpdateChapterRatingErr
	}

	objectId, err := primitive.ObjectIDFromHex(courseId)
	if err != nil {
		return mongodb.ErrRecordNotFound
	}
	course, ok := s.courses[objectId]
	if !ok {
		return mongodb.ErrNoDocumentModified
	}

	for i, chapter := range course.Chapters {
		if chapter.Name != chapterName {
			continue
		}
		if chapter.Rating == rating {
			return mongodb.ErrNoDocumentModified
		}
		course.Chapters[i].Rating = rating
		s.courses[objectId] = course
		return nil
	}

	return mongodb.ErrNoDocumentModified
}

func (s *MemoryStore) UpdateCourseRating(ctx context.Context, courseId string, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if s.UpdateCourseRatingErr != nil {
		return s.UpdateCourseRatingErr
	}

	objectId, err := primitive.ObjectIDFromHex(courseId)
	if err != nil {
		return mongodb.ErrRecordNotFound
	}
	course, ok := s.courses[objectId]
	if !ok {
		return mongodb.ErrRecordNotFound
	}
	course.Rating = rating
	s.courses[objectId] = course
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func compare(a, b mongodb.CourseDb, field string) int {
	switch field {
	case "date":
		return a.Date.Compare(b.Date)
	case "rating":
		return a.Rating - b.Rating
	default:
		return strings.Compare(a.Name, b.Name)
	}
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

func cloneCourse(course mongodb.CourseDb) mongodb.CourseDb {
	if course.Domain != nil {
		course.Domain = append([]string(nil), course.Domain...)
	}
	if course.Chapters != nil {
		course.Chapters = append([]mongodb.ChapterDb(nil), course.Chapters...)
	}
	return course
}
