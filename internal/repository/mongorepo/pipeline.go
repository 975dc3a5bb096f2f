package mongorepo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/haguru/blogd/internal/query"
	"github.com/haguru/blogd/internal/repository/constants"
)

var mongoSortFields = map[query.SortField]string{
	query.SortByTitle:     "title",
	query.SortByCreatedAt: "created_at",
}

// BuildListPipeline filters, orders and joins posts with their author's username.
func BuildListPipeline(opts query.ListOptions) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if opts.HasSearch() {
		pattern := bson.M{"$regex": regexp.QuoteMeta(opts.Search)}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"$or": bson.A{
				bson.M{"title": pattern},
				bson.M{"content": pattern},
			},
		}}})
	}
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sortDoc(opts)}})
	return append(pipeline, authorStages()...)
}

// BuildRecentPipeline selects the newest limit posts of userID.
func BuildRecentPipeline(userID string, limit int) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	return append(pipeline, authorStages()...)
}

func sortDoc(opts query.ListOptions) bson.D {
	field, ok := mongoSortFields[opts.SortField]
	dir := 1
	if opts.Direction == query.Descending {
		dir = -1
	}
	if !ok {
		field, dir = mongoSortFields[query.SortByCreatedAt], -1
	}
	return bson.D{{Key: field, Value: dir}}
}

func authorStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         constants.UsersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "author",
		}}},
		{{Key: "$unwind", Value: "$author"}},
		{{Key: "$project", Value: bson.M{
			"title":      1,
			"content":    1,
			"user_id":    1,
			"created_at": 1,
			"updated_at": 1,
			"author":     bson.M{"username": "$author.username"},
		}}},
	}
}
