package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

// activeUsersByID resolves the given user ids to their non-deleted accounts
// in one query. It is the single place soft-delete filtering for referenced
// owners is derived, instead of each listing re-implementing it.
func activeUsersByID(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.User{}, nil
	}

	cursor, err := db.Collection("users").Find(ctx, bson.M{
		"_id":       bson.M{"$in": ids},
		"isDeleted": bson.M{"$ne": true},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}

func activeOwners(ctx context.Context, db *mongo.Database, orders []models.Order) (map[primitive.ObjectID]models.User, error) {
	return activeUsersByID(ctx, db, uniqueUserIDs(len(orders), func(i int) primitive.ObjectID {
		return orders[i].UserID
	}))
}

func activeMessageOwners(ctx context.Context, db *mongo.Database, messages []models.Message) (map[primitive.ObjectID]models.User, error) {
	return activeUsersByID(ctx, db, uniqueUserIDs(len(messages), func(i int) primitive.ObjectID {
		return messages[i].UserID
	}))
}

func uniqueUserIDs(n int, idAt func(int) primitive.ObjectID) []primitive.ObjectID {
	seen := map[primitive.ObjectID]struct{}{}
	ids := make([]primitive.ObjectID, 0, n)
	for i := 0; i < n; i++ {
		id := idAt(i)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
