package courses

import (
	"errors"
	"net/http"
)

var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrChapterNotFound    = errors.New("chapter not found")
	ErrInvalidRating      = errors.New("rating must be one of -1, 0 or 1")
	ErrRatingUpdateFailed = errors.New("rating update failed")
)

var ErrorMap = map[error]int{
	ErrCourseNotFound:     http.StatusNotFound,
	ErrChapterNotFound:    http.StatusNotFound,
	ErrInvalidRating:      http.StatusUnprocessableEntity,
	ErrRatingUpdateFailed: http.StatusBadRequest,
}
