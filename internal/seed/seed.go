// Package seed loads the static course dataset into the document store.
package seed

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/lealre/courses-backend/internal/logx"
	"github.com/lealre/courses-backend/internal/mongodb"
	"github.com/rs/zerolog"
)

const DefaultFile = "courses.json"

// CourseRecord is one element of the dataset file. Ratings present in the
// file are ignored.
type CourseRecord struct {
	Name        string          `json:"name"`
	Date        float64         `json:"date"`
	Description string          `json:"description"`
	Domain      []string        `json:"domain"`
	Chapters    []ChapterRecord `json:"chapters"`
}

type ChapterRecord struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// Store is what the loader needs from the document store.
type Store interface {
	CreateCourseIndexes(ctx context.Context, reset bool) error
	AddCourse(ctx context.Context, course mongodb.CourseDb) (mongodb.CourseDb, error)
}

type FailedCourse struct {
	Name string
	Err  error
}

type Report struct {
	Inserted int
	Failed   []FailedCourse
}

func ReadFile(path string) ([]CourseRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

func Decode(r io.Reader) ([]CourseRecord, error) {
	var records []CourseRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return records, nil
}

// EpochToTime converts epoch seconds, possibly fractional, to a UTC time.
func EpochToTime(epoch float64) time.Time {
	seconds, fraction := math.Modf(epoch)
	return time.Unix(int64(seconds), int64(fraction*float64(time.Second))).UTC()
}

// Prepare converts records into documents with every chapter rating and the
// course rating set to zero.
func Prepare(records []CourseRecord) []mongodb.CourseDb {
	courses := make([]mongodb.CourseDb, len(records))
	for i, record := range records {
		chapters := make([]mongodb.ChapterDb, len(record.Chapters))
		for j, chapter := range record.Chapters {
			chapters[j] = mongodb.ChapterDb{Name: chapter.Name, Text: chapter.Text, Rating: 0}
		}

		domain := record.Domain
		if domain == nil {
			domain = []string{}
		}

		courses[i] = mongodb.CourseDb{
			Name:        record.Name,
			Date:        EpochToTime(record.Date),
			Description: record.Description,
			Domain:      domain,
			Chapters:    chapters,
			Rating:      0,
		}
	}
	return courses
}

type Loader struct {
	store        Store
	logger       zerolog.Logger
	resetIndexes bool
}

func NewLoader(store Store, logger zerolog.Logger, resetIndexes bool) *Loader {
	return &Loader{store: store, logger: logger, resetIndexes: resetIndexes}
}

/*
Run creates the course indexes and inserts every record as a new course.

An insert that fails, for example on a name that already exists, is logged
and counted in the report; the remaining records are still inserted. Only a
failure to create the indexes stops the run.
*/
func (l *Loader) Run(ctx context.Context, records []CourseRecord) (Report, error) {
	ctx = logx.WithLogger(ctx, l.logger)

	if err := l.store.CreateCourseIndexes(ctx, l.resetIndexes); err != nil {
		return Report{}, err
	}

	var report Report
	for _, course := range Prepare(records) {
		if _, err := l.store.AddCourse(ctx, course); err != nil {
			l.logger.Error().Err(err).Str("course", course.Name).Msg("error inserting course")
			report.Failed = append(report.Failed, FailedCourse{Name: course.Name, Err: err})
			continue
		}
		report.Inserted++
	}

	l.logger.Info().
		Int("inserted", report.Inserted).
		Int("failed", len(report.Failed)).
		Msg("courses added and indices created")

	return report, nil
}
