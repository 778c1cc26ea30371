package store

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
)

// ListCatalog returns all records of one catalog collection.
func (s *Store) ListCatalog(ctx context.Context, kind models.CatalogKind) ([]models.CatalogRecord, error) {
	cur, err := s.db.Collection(string(kind)).Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta "+string(kind), err)
	}
	records := []models.CatalogRecord{}
	if err := cur.All(ctx, &records); err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta "+string(kind), err)
	}
	return records, nil
}

// FindCatalogByName does a case-insensitive exact-name lookup.
// A miss is reported as NotFound.
func (s *Store) FindCatalogByName(ctx context.Context, kind models.CatalogKind, name string) (*models.CatalogRecord, error) {
	filter := bson.M{"namn": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(name) + "$",
		Options: "i",
	}}
	var record models.CatalogRecord
	err := s.db.Collection(string(kind)).FindOne(ctx, filter).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, "Hittades inte: "+name)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte söka i "+string(kind), err)
	}
	return &record, nil
}

// InsertCatalog creates a new named record. When a concurrent insert got
// there first the unique name index rejects ours; the caller is expected to
// re-fetch on IsDuplicateName.
func (s *Store) InsertCatalog(ctx context.Context, kind models.CatalogKind, name string) (*models.CatalogRecord, error) {
	now := time.Now()
	record := models.CatalogRecord{Name: name, CreatedAt: now, UpdatedAt: now}
	res, err := s.db.Collection(string(kind)).InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte skapa "+string(kind), err)
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return &record, nil
}

// IsDuplicateName reports whether an insert failed on the unique name index.
func (s *Store) IsDuplicateName(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// GetCatalogByIDs fetches a set of catalog records keyed by id.
func (s *Store) GetCatalogByIDs(ctx context.Context, kind models.CatalogKind, ids []primitive.ObjectID) (map[primitive.ObjectID]models.CatalogRecord, error) {
	result := map[primitive.ObjectID]models.CatalogRecord{}
	if len(ids) == 0 {
		return result, nil
	}
	cur, err := s.db.Collection(string(kind)).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta "+string(kind), err)
	}
	var records []models.CatalogRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta "+string(kind), err)
	}
	for _, r := range records {
		result[r.ID] = r
	}
	return result, nil
}
