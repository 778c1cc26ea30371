package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
)

func (s *Store) InsertUser(ctx context.Context, user *models.User) error {
	res, err := s.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.Wrap(apperr.ValidationFailed, "Användarnamnet är upptaget", err)
		}
		return apperr.Wrap(apperr.StoreError, "Kunde inte skapa användaren", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "Användaren hittades inte")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta användaren", err)
	}
	return &user, nil
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.db.Collection("users").FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "Användaren hittades inte")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta användaren", err)
	}
	return &user, nil
}

func (s *Store) getUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	result := map[primitive.ObjectID]models.User{}
	if len(ids) == 0 {
		return result, nil
	}
	cur, err := s.db.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta användare", err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta användare", err)
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}
