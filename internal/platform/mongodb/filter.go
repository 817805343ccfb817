package mongodb

import (
	"regexp"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/phrazzld/planner-api/internal/store"
)

// BuildFilter translates a store.Filter into a MongoDB query document.
// User supplied text is escaped so it matches literally.
func BuildFilter(f store.Filter) (bson.D, error) {
	q := bson.D{}

	if f.ExcludeID != "" {
		oid, err := primitive.ObjectIDFromHex(f.ExcludeID)
		if err != nil {
			return nil, store.ErrInvalidID
		}
		q = append(q, bson.E{Key: "_id", Value: bson.D{{Key: "$ne", Value: oid}}})
	}

	for _, k := range sortedKeys(f.Equals) {
		q = append(q, bson.E{Key: k, Value: f.Equals[k]})
	}

	for _, k := range sortedKeys(f.EqualFold) {
		q = append(q, bson.E{Key: k, Value: primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(f.EqualFold[k]) + "$",
			Options: "i",
		}})
	}

	if f.HasSearch() {
		q = append(q, bson.E{Key: f.SearchField, Value: primitive.Regex{
			Pattern: regexp.QuoteMeta(f.Search),
			Options: "i",
		}})
	}

	return q, nil
}

// sortOrder is newest first with the ObjectID as a stable tie breaker.
var sortOrder = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
