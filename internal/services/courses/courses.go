package courses

import (
	"context"
	"errors"
	"fmt"

	"github.com/lealre/courses-backend/internal/mongodb"
)

// Store is the slice of the document store the course service needs.
// *mongodb.DB satisfies it.
type Store interface {
	GetCourseById(ctx context.Context, id string) (mongodb.CourseDb, error)
	GetCourses(ctx context.Context, query mongodb.CourseQuery) ([]mongodb.CourseDb, error)
	UpdateChapterRating(ctx context.Context, courseId, chapterName string, rating int) error
	UpdateCourseRating(ctx context.Context, courseId string, rating int) error
}

var sortOptions = map[SortBy]mongodb.CourseQuery{
	SortByName:   {SortField: "name"},
	SortByDate:   {SortField: "date", Descending: true},
	SortByRating: {SortField: "rating", Descending: true},
}

// BuildCourseQuery turns the listing parameters into a store query. Any
// sortBy other than date or rating sorts by name.
func BuildCourseQuery(sortBy, domain string) mongodb.CourseQuery {
	query, ok := sortOptions[SortBy(sortBy)]
	if !ok {
		query = sortOptions[SortByName]
	}
	query.Domain = domain
	return query
}

func ListCourses(store Store, ctx context.Context, sortBy, domain string) ([]Course, error) {
	coursesDb, err := store.GetCourses(ctx, BuildCourseQuery(sortBy, domain))
	if err != nil {
		return nil, err
	}

	allCourses := make([]Course, len(coursesDb))
	for i, courseDb := range coursesDb {
		allCourses[i] = MapDbCourseToApiCourse(courseDb)
	}

	return allCourses, nil
}

func GetCourse(store Store, ctx context.Context, courseId string) (Course, error) {
	courseDb, err := getCourseDb(store, ctx, courseId)
	if err != nil {
		return Course{}, err
	}

	return MapDbCourseToApiCourse(courseDb), nil
}

func GetChapter(store Store, ctx context.Context, courseId, chapterName string) (Chapter, error) {
	courseDb, err := getCourseDb(store, ctx, courseId)
	if err != nil {
		return Chapter{}, err
	}

	chapterDb, ok := FindChapter(courseDb, chapterName)
	if !ok {
		return Chapter{}, ErrChapterNotFound
	}

	return MapDbChapterToApiChapter(chapterDb), nil
}

/*
RateChapter stores a reader's rating on a chapter and moves the course
aggregate by the difference between the new and the previous chapter rating.

The steps are not atomic: the aggregate is computed from the course as read
before the chapter write, so two concurrent ratings on the same course can
leave the aggregate reflecting only one of them. If the aggregate write fails
after the chapter write, the chapter keeps its new rating.

Writing the rating a chapter already has modifies nothing in the store and
is reported as ErrRatingUpdateFailed.
*/
func RateChapter(store Store, ctx context.Context, courseId, chapterName string, rating Rating) (Chapter, error) {
	courseDb, err := getCourseDb(store, ctx, courseId)
	if err != nil {
		return Chapter{}, err
	}

	chapterDb, ok := FindChapter(courseDb, chapterName)
	if !ok {
		return Chapter{}, ErrChapterNotFound
	}

	currentTotal := totalRating(courseDb)

	if err := store.UpdateChapterRating(ctx, courseId, chapterName, rating.Int()); err != nil {
		switch {
		case errors.Is(err, mongodb.ErrNoDocumentModified):
			return Chapter{}, ErrRatingUpdateFailed
		case errors.Is(err, mongodb.ErrRecordNotFound):
			return Chapter{}, ErrCourseNotFound
		}
		return Chapter{}, fmt.Errorf("updating chapter rating: %w", err)
	}

	updatedTotal := currentTotal + rating.Int() - chapterDb.Rating
	if err := store.UpdateCourseRating(ctx, courseId, updatedTotal); err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return Chapter{}, ErrCourseNotFound
		}
		return Chapter{}, fmt.Errorf("updating course rating: %w", err)
	}

	return GetChapter(store, ctx, courseId, chapterName)
}

func getCourseDb(store Store, ctx context.Context, courseId string) (mongodb.CourseDb, error) {
	courseDb, err := store.GetCourseById(ctx, courseId)
	if err != nil {
		if errors.Is(err, mongodb.ErrRecordNotFound) {
			return mongodb.CourseDb{}, ErrCourseNotFound
		}
		return mongodb.CourseDb{}, err
	}
	return courseDb, nil
}
