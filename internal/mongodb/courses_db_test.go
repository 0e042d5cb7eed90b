package mongodb

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCourseQueryFilterAndOptions(t *testing.T) {
	t.Run("Defaults to name ascending without filter", func(t *testing.T) {
		filter, opts := CourseQuery{}.filterAndOptions()
		require.Equal(t, bson.M{}, filter)
		require.Equal(t, bson.D{{Key: "name", Value: 1}}, opts.Sort)
	})

	t.Run("Descending sort with domain filter", func(t *testing.T) {
		filter, opts := CourseQuery{Domain: "programming", SortField: "date", Descending: true}.filterAndOptions()
		require.Equal(t, bson.M{"domain": "programming"}, filter)
		require.Equal(t, bson.D{{Key: "date", Value: -1}}, opts.Sort)
	})
}
