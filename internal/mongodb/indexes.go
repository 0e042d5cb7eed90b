package mongodb

import (
	"context"
	"fmt"

	"github.com/lealre/courses-backend/internal/logx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CourseNameIndex        = "name_unique"
	CourseDateIndex        = "date_1"
	CourseDomainIndex      = "domain_1"
	CourseChapterNameIndex = "chapters.name_1"
)

// DeleteAllIndexes deletes all indexes from all collections in the database
// (except the default _id_ index which cannot be deleted)
func (db *DB) DeleteAllIndexes(ctx context.Context) error {
	logger := logx.FromContext(ctx)
	database := db.Database()

	collections, err := database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, collName := range collections {
		coll := database.Collection(collName)

		names, err := listIndexNames(ctx, coll)
		if err != nil {
			return fmt.Errorf("failed to list indexes for collection '%s': %w", collName, err)
		}

		for _, indexName := range names {
			if indexName == "_id_" {
				continue
			}
			if _, err := coll.Indexes().DropOne(ctx, indexName); err != nil {
				return fmt.Errorf("failed to delete index '%s' from collection '%s': %w", indexName, collName, err)
			}
			logger.Info().Str("index", indexName).Str("collection", collName).Msg("deleted index")
		}
	}

	return nil
}

// CreateCourseIndexes creates the indexes used by listing, filtering and
// chapter lookups, plus the uniqueness constraint on the course name.
func (db *DB) CreateCourseIndexes(ctx context.Context, reset bool) error {
	coll := db.Collection(CoursesCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName(CourseNameIndex),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName(CourseDateIndex),
		},
		{
			Keys:    bson.D{{Key: "domain", Value: 1}},
			Options: options.Index().SetName(CourseDomainIndex),
		},
		{
			Keys:    bson.D{{Key: "chapters.name", Value: 1}},
			Options: options.Index().SetName(CourseChapterNameIndex),
		},
	}

	for _, index := range indexes {
		if err := createIndexIfNotExists(ctx, coll, index, reset); err != nil {
			return fmt.Errorf("failed to create course indexes: %w", err)
		}
	}

	return nil
}

// ListCourseIndexes returns the names of the indexes on the courses collection.
func (db *DB) ListCourseIndexes(ctx context.Context) ([]string, error) {
	return listIndexNames(ctx, db.Collection(CoursesCollection))
}

// createIndexIfNotExists checks if an index exists and creates it if it doesn't
// If reset is true, it will delete the existing index and recreate it
func createIndexIfNotExists(ctx context.Context, coll *mongo.Collection, indexModel mongo.IndexModel, reset bool) error {
	logger := logx.FromContext(ctx)
	indexName := *indexModel.Options.Name

	names, err := listIndexNames(ctx, coll)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}

	indexExists := false
	for _, name := range names {
		if name == indexName {
			indexExists = true
			break
		}
	}

	if indexExists {
		if !reset {
			logger.Info().Str("index", indexName).Str("collection", coll.Name()).Msg("index already exists, skipping")
			return nil
		}
		if _, err := coll.Indexes().DropOne(ctx, indexName); err != nil {
			return fmt.Errorf("failed to delete index '%s': %w", indexName, err)
		}
		logger.Info().Str("index", indexName).Str("collection", coll.Name()).Msg("deleted index")
	}

	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index '%s': %w", indexName, err)
	}

	logger.Info().Str("index", indexName).Str("collection", coll.Name()).Msg("created index")
	return nil
}

func listIndexNames(ctx context.Context, coll *mongo.Collection) ([]string, error) {
	cursor, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var index bson.M
		if err := cursor.Decode(&index); err != nil {
			return nil, fmt.Errorf("failed to decode index: %w", err)
		}
		if name, ok := index["name"].(string); ok {
			names = append(names, name)
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return names, nil
}
