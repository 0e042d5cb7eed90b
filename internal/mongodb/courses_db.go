package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ----- Types for the database -----

type CourseDb struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Date        time.Time          `json:"date" bson:"date"`
	Description string             `json:"description" bson:"description"`
	Domain      []string           `json:"domain" bson:"domain"`
	Chapters    []ChapterDb        `json:"chapters" bson:"chapters"`
	Rating      int                `json:"rating" bson:"rating"`
}

type ChapterDb struct {
	Name   string `json:"name" bson:"name"`
	Text   string `json:"text" bson:"text"`
	Rating int    `json:"rating" bson:"rating"`
}

// CourseQuery describes a listing: an optional domain tag the course must
// carry and a single sort key.
type CourseQuery struct {
	Domain     string
	SortField  string
	Descending bool
}

func (q CourseQuery) filterAndOptions() (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if q.Domain != "" {
		// Equality on an array field matches any element.
		filter["domain"] = q.Domain
	}

	sortField := q.SortField
	if sortField == "" {
		sortField = "name"
	}
	order := 1
	if q.Descending {
		order = -1
	}

	return filter, options.Find().SetSort(bson.D{{Key: sortField, Value: order}})
}

// ----- Methods for the database -----

// GetCourseById returns ErrRecordNotFound for ids that are not valid
// ObjectIDs as well as for ids with no document.
func (db *DB) GetCourseById(ctx context.Context, id string) (CourseDb, error) {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return CourseDb{}, ErrRecordNotFound
	}

	coll := db.Collection(CoursesCollection)
	var courseDb CourseDb
	if err := coll.FindOne(ctx, bson.M{"_id": objectId}).Decode(&courseDb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return CourseDb{}, ErrRecordNotFound
		}
		return CourseDb{}, err
	}
	return courseDb, nil
}

func (db *DB) GetCourses(ctx context.Context, query CourseQuery) ([]CourseDb, error) {
	coll := db.Collection(CoursesCollection)

	filter, opts := query.filterAndOptions()
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	allCourses := []CourseDb{}
	if err := cursor.All(ctx, &allCourses); err != nil {
		return []CourseDb{}, err
	}

	return allCourses, nil
}

// UpdateChapterRating sets the rating of the first chapter named chapterName.
// A write that changes nothing, including one that stores the value the
// chapter already has, returns ErrNoDocumentModified.
func (db *DB) UpdateChapterRating(ctx context.Context, courseId, chapterName string, rating int) error {
	objectId, err := primitive.ObjectIDFromHex(courseId)
	if err != nil {
		return ErrRecordNotFound
	}

	coll := db.Collection(CoursesCollection)
	filter := bson.M{"_id": objectId, "chapters.name": chapterName}
	update := bson.M{"$set": bson.M{"chapters.$.rating": rating}}

	result, err := coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}

	if result.ModifiedCount == 0 {
		return ErrNoDocumentModified
	}

	return nil
}

// UpdateCourseRating overwrites the aggregate rating of a course.
func (db *DB) UpdateCourseRating(ctx context.Context, courseId string, rating int) error {
	objectId, err := primitive.ObjectIDFromHex(courseId)
	if err != nil {
		return ErrRecordNotFound
	}

	coll := db.Collection(CoursesCollection)
	result, err := coll.UpdateOne(ctx, bson.M{"_id": objectId}, bson.M{"$set": bson.M{"rating": rating}})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// AddCourse inserts a new course; the unique index on name turns a repeated
// name into a duplicate key error.
func (db *DB) AddCourse(ctx context.Context, course CourseDb) (CourseDb, error) {
	coll := db.Collection(CoursesCollection)

	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	if course.Domain == nil {
		course.Domain = []string{}
	}
	if course.Chapters == nil {
		course.Chapters = []ChapterDb{}
	}

	if _, err := coll.InsertOne(ctx, course); err != nil {
		return CourseDb{}, err
	}

	return course, nil
}

func (db *DB) CountCourses(ctx context.Context) (int, error) {
	coll := db.Collection(CoursesCollection)

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}

	return int(total), nil
}

func (db *DB) DropCourses(ctx context.Context) error {
	return db.Collection(CoursesCollection).Drop(ctx)
}
