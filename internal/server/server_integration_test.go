//go:build integration

package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"testing"

	"github.com/lealre/courses-backend/internal/logx"
	"github.com/lealre/courses-backend/internal/metrics"
	"github.com/lealre/courses-backend/internal/mongodb"
	"github.com/lealre/courses-backend/internal/seed"
	"github.com/lealre/courses-backend/internal/services/courses"
	"github.com/lealre/courses-backend/internal/testinfra"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testinfra.Terminate()
	os.Exit(code)
}

func newMongoServer(t *testing.T, records []seed.CourseRecord) *httptest.Server {
	t.Helper()

	client, _ := testinfra.SharedMongo(t)
	db := mongodb.NewDB(client, testinfra.DatabaseName(t, client))
	logger := logx.NewWithWriter(io.Discard, "info", false)

	_, err := seed.NewLoader(db, logger, false).Run(context.Background(), records)
	require.NoError(t, err)

	server := httptest.NewServer(NewServer(db, logger, metrics.NewMetrics()))
	t.Cleanup(server.Close)
	return server
}

func TestRatingScenarioAgainstMongo(t *testing.T) {
	server := newMongoServer(t, []seed.CourseRecord{{
		Name:        "Scenario",
		Date:        1700000000,
		Description: "one course, two chapters",
		Domain:      []string{"testing"},
		Chapters:    []seed.ChapterRecord{{Name: "Chapter 1", Text: "a"}, {Name: "Chapter 2", Text: "b"}},
	}})

	var listed []courses.Course
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/courses/", &listed))
	require.Len(t, listed, 1)
	courseId := listed[0].Id
	require.Equal(t, 0, listed[0].Rating)

	var chapter courses.Chapter
	require.Equal(t, http.StatusOK, postJSON(t, rateURL(server.URL, courseId, "Chapter 1", "1"), &chapter))
	require.Equal(t, 1, chapter.Rating)

	var course courses.Course
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/courses/"+courseId, &course))
	require.Equal(t, 1, course.Rating)

	require.Equal(t, http.StatusOK, postJSON(t, rateURL(server.URL, courseId, "Chapter 2", "-1"), &chapter))
	require.Equal(t, -1, chapter.Rating)

	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/courses/"+courseId, &course))
	require.Equal(t, 0, course.Rating)

	// Same value again: nothing is modified and the request fails.
	require.Equal(t, http.StatusBadRequest, postJSON(t, rateURL(server.URL, courseId, "Chapter 2", "-1"), nil))
	require.Equal(t, http.StatusUnprocessableEntity, postJSON(t, rateURL(server.URL, courseId, "Chapter 2", "5"), nil))

	require.Equal(t, http.StatusOK, getJSON(t, chapterURL(server.URL, courseId, "Chapter 2"), &chapter))
	require.Equal(t, courses.Chapter{Name: "Chapter 2", Text: "b", Rating: -1}, chapter)

	require.Equal(t, http.StatusNotFound, getJSON(t, server.URL+"/courses/not-a-valid-id", nil))
}

func TestListingAgainstMongo(t *testing.T) {
	server := newMongoServer(t, []seed.CourseRecord{
		{Name: "Beta", Date: 1600000000, Domain: []string{"programming"}},
		{Name: "Alpha", Date: 1500000000, Domain: []string{"mathematics"}},
		{Name: "Gamma", Date: 1700000000, Domain: []string{"programming", "mathematics"}},
	})

	var byName []courses.Course
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/courses/?sort_by=name", &byName))
	require.True(t, sort.SliceIsSorted(byName, func(i, j int) bool { return byName[i].Name < byName[j].Name }))

	var byDate []courses.Course
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/courses/?sort_by=date", &byDate))
	require.Equal(t, []string{"Gamma", "Beta", "Alpha"}, []string{byDate[0].Name, byDate[1].Name, byDate[2].Name})

	var filtered []courses.Course
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/courses/?domain=mathematics", &filtered))
	require.Len(t, filtered, 2)
	for _, course := range filtered {
		require.Contains(t, course.Domain, "mathematics")
	}
}
