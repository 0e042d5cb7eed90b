package courses

import "github.com/lealre/courses-backend/internal/mongodb"

// FindChapter returns the first chapter whose name is exactly chapterName.
func FindChapter(course mongodb.CourseDb, chapterName string) (mongodb.ChapterDb, bool) {
	for _, chapter := range course.Chapters {
		if chapter.Name == chapterName {
			return chapter, true
		}
	}
	return mongodb.ChapterDb{}, false
}

func totalRating(course mongodb.CourseDb) int {
	total := 0
	for _, chapter := range course.Chapters {
		total += chapter.Rating
	}
	return total
}
