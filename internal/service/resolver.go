// Package service holds the decision logic between the HTTP handlers and
// the store: catalog reference resolution and the order lifecycle rules.
package service

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
	"hakim-livs-backend/internal/util"
)

// CatalogStore is the slice of the store the resolver needs.
type CatalogStore interface {
	FindCatalogByName(ctx context.Context, kind models.CatalogKind, name string) (*models.CatalogRecord, error)
	InsertCatalog(ctx context.Context, kind models.CatalogKind, name string) (*models.CatalogRecord, error)
	IsDuplicateName(err error) bool
}

// Resolution is the outcome of resolving one catalog reference. Created
// makes the implicit-record side effect observable to callers.
type Resolution struct {
	ID      primitive.ObjectID
	Created bool
}

// Resolver maps a client-supplied name-or-id to a catalog record id,
// creating the record when no case-insensitive name match exists.
type Resolver struct {
	catalogs CatalogStore
}

func NewResolver(catalogs CatalogStore) *Resolver {
	return &Resolver{catalogs: catalogs}
}

// Resolve turns a value that is either a 24-hex object id or a free-text
// name into a record id. Id-shaped values pass through untouched; the caller
// never indicates which form it sent.
func (r *Resolver) Resolve(ctx context.Context, kind models.CatalogKind, value string) (Resolution, error) {
	if id, err := primitive.ObjectIDFromHex(value); err == nil {
		return Resolution{ID: id}, nil
	}

	record, err := r.catalogs.FindCatalogByName(ctx, kind, value)
	if err == nil {
		return Resolution{ID: record.ID}, nil
	}
	if apperr.KindOf(err) != apperr.NotFound {
		return Resolution{}, err
	}

	record, err = r.catalogs.InsertCatalog(ctx, kind, Capitalize(value))
	if err != nil {
		// Lost the race to a concurrent insert: the record exists now,
		// use it.
		if r.catalogs.IsDuplicateName(err) {
			record, err = r.catalogs.FindCatalogByName(ctx, kind, value)
			if err != nil {
				return Resolution{}, err
			}
			return Resolution{ID: record.ID}, nil
		}
		return Resolution{}, err
	}

	util.CatalogRecordsCreatedTotal.WithLabelValues(string(kind)).Inc()
	zap.L().Info("created catalog record",
		zap.String("kind", string(kind)),
		zap.String("namn", record.Name),
		zap.String("id", record.ID.Hex()))
	return Resolution{ID: record.ID, Created: true}, nil
}

// ResolveMany resolves each value independently. Creations are not
// transactional with whatever write follows; a later failure leaves any
// records created here in place.
func (r *Resolver) ResolveMany(ctx context.Context, kind models.CatalogKind, values []string) ([]Resolution, error) {
	resolutions := make([]Resolution, 0, len(values))
	for _, value := range values {
		res, err := r.Resolve(ctx, kind, value)
		if err != nil {
			return nil, err
		}
		resolutions = append(resolutions, res)
	}
	return resolutions, nil
}

// Capitalize uppercases the first rune and lowercases the rest. Compound
// names get flattened ("mcDonald's" -> "Mcdonald's").
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}
