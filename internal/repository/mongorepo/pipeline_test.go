package mongorepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/haguru/blogd/internal/query"
)

func stageNames(t *testing.T, pipeline []bson.D) []string {
	t.Helper()
	names := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		require.Len(t, stage, 1)
		names = append(names, stage[0].Key)
	}
	return names
}

func TestBuildListPipeline(t *testing.T) {
	tests := []struct {
		name       string
		opts       query.ListOptions
		wantStages []string
		wantSort   bson.D
	}{
		{
			name:       "default ordering",
			opts:       query.DefaultListOptions(),
			wantStages: []string{"$sort", "$lookup", "$unwind", "$project"},
			wantSort:   bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name:       "search with title ascending",
			opts:       query.ParseListOptions("Test", "title,ASC"),
			wantStages: []string{"$match", "$sort", "$lookup", "$unwind", "$project"},
			wantSort:   bson.D{{Key: "title", Value: 1}},
		},
		{
			name:       "unknown field on a hand-built value",
			opts:       query.ListOptions{SortField: "content", Direction: query.Ascending},
			wantStages: []string{"$sort", "$lookup", "$unwind", "$project"},
			wantSort:   bson.D{{Key: "created_at", Value: -1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := BuildListPipeline(tt.opts)
			assert.Equal(t, tt.wantStages, stageNames(t, pipeline))

			for _, stage := range pipeline {
				if stage[0].Key == "$sort" {
					assert.Equal(t, tt.wantSort, stage[0].Value)
				}
			}
		})
	}
}

func TestBuildListPipeline_SearchIsQuoted(t *testing.T) {
	pipeline := BuildListPipeline(query.ParseListOptions("a.b*", ""))

	match := pipeline[0][0].Value.(bson.M)
	or := match["$or"].(bson.A)
	require.Len(t, or, 2)
	assert.Equal(t, bson.M{"title": bson.M{"$regex": `a\.b\*`}}, or[0])
	assert.Equal(t, bson.M{"content": bson.M{"$regex": `a\.b\*`}}, or[1])
}

func TestBuildRecentPipeline(t *testing.T) {
	pipeline := BuildRecentPipeline("user-1", 5)

	assert.Equal(t, []string{"$match", "$sort", "$limit", "$lookup", "$unwind", "$project"}, stageNames(t, pipeline))
	assert.Equal(t, bson.M{"user_id": "user-1"}, pipeline[0][0].Value)
	assert.Equal(t, 5, pipeline[2][0].Value)
}
