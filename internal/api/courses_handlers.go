package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/lealre/courses-backend/internal/logx"
	"github.com/lealre/courses-backend/internal/services/courses"
)

func (api *API) ListCourses(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	sortBy := r.URL.Query().Get("sort_by")
	domain := r.URL.Query().Get("domain")

	allCourses, err := courses.ListCourses(api.Store, r.Context(), sortBy, domain)
	if err != nil {
		logger.Error().Err(err).Str("sortBy", sortBy).Str("domain", domain).Msg("failed to list courses")
		respondWithError(w, http.StatusInternalServerError, "Failed to fetch courses from database")
		return
	}

	respondWithJSON(w, http.StatusOK, allCourses)
}

func (api *API) GetCourse(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	courseId := r.PathValue("course_id")

	course, err := courses.GetCourse(api.Store, r.Context(), courseId)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(courses.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Error().Err(err).Str("courseId", courseId).Msg("failed to get course")
		respondWithError(w, http.StatusInternalServerError, "Unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, course)
}

func (api *API) GetChapter(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	courseId := r.PathValue("course_id")
	chapterName := r.PathValue("chapter_name")

	chapter, err := courses.GetChapter(api.Store, r.Context(), courseId, chapterName)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(courses.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Error().Err(err).Str("courseId", courseId).Str("chapter", chapterName).Msg("failed to get chapter")
		respondWithError(w, http.StatusInternalServerError, "Unexpected error occurred")
		return
	}

	respondWithJSON(w, http.StatusOK, chapter)
}

func (api *API) RateChapter(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())
	courseId := r.PathValue("course_id")
	chapterName := r.PathValue("chapter_name")

	// Rejected before the store is touched.
	rating, err := courses.ParseRating(r.URL.Query().Get("rating"))
	if err != nil {
		api.recordRating(err)
		respondWithError(w, http.StatusUnprocessableEntity, formatErrorMessage(err))
		return
	}

	chapter, err := courses.RateChapter(api.Store, r.Context(), courseId, chapterName, rating)
	api.recordRating(err)
	if err != nil {
		if statusCode, ok := getErrorStatusCode(courses.ErrorMap, err); ok {
			respondWithError(w, statusCode, formatErrorMessage(err))
			return
		}
		logger.Error().Err(err).Str("courseId", courseId).Str("chapter", chapterName).Msg("failed to rate chapter")
		respondWithError(w, http.StatusInternalServerError, "Unexpected error occurred")
		return
	}

	logger.Info().Str("courseId", courseId).Str("chapter", chapterName).Int("rating", rating.Int()).Msg("chapter rated")
	respondWithJSON(w, http.StatusOK, chapter)
}

func (api *API) Health(w http.ResponseWriter, r *http.Request) {
	logger := logx.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := api.Pinger.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("database ping failed")
		respondWithError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, DefaultResponse{Message: "ok"})
}

func (api *API) recordRating(err error) {
	if api.Metrics == nil {
		return
	}

	switch {
	case err == nil:
		api.Metrics.RecordRating("ok")
	case errors.Is(err, courses.ErrInvalidRating):
		api.Metrics.RecordRating("invalid")
	case errors.Is(err, courses.ErrCourseNotFound), errors.Is(err, courses.ErrChapterNotFound):
		api.Metrics.RecordRating("not_found")
	case errors.Is(err, courses.ErrRatingUpdateFailed):
		api.Metrics.RecordRating("update_failed")
	default:
		api.Metrics.RecordRating("error")
	}
}
