package courses

import "github.com/lealre/courses-backend/internal/mongodb"

func MapDbCourseToApiCourse(course mongodb.CourseDb) Course {
	chapters := make([]Chapter, len(course.Chapters))
	for i, chapter := range course.Chapters {
		chapters[i] = MapDbChapterToApiChapter(chapter)
	}

	domain := course.Domain
	if domain == nil {
		domain = []string{}
	}

	return Course{
		Id:          course.ID.Hex(),
		Name:        course.Name,
		Date:        course.Date.UTC().Format(DateLayout),
		Description: course.Description,
		Domain:      domain,
		Chapters:    chapters,
		Rating:      course.Rating,
	}
}

func MapDbChapterToApiChapter(chapter mongodb.ChapterDb) Chapter {
	return Chapter{
		Name:   chapter.Name,
		Text:   chapter.Text,
		Rating: chapter.Rating,
	}
}
