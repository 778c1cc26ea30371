package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
)

type fakeProducts struct {
	products map[primitive.ObjectID]models.Product
}

func (f *fakeProducts) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return &p, nil
	}
	return nil, apperr.New(apperr.NotFound, "Produkten hittades inte.")
}

func TestValidateStatusUpdate(t *testing.T) {
	assert.NoError(t, ValidateStatusUpdate("pending", ""))
	assert.NoError(t, ValidateStatusUpdate("cancelled", "refunded"))
	assert.NoError(t, ValidateStatusUpdate("", "paid"))
	// "delivered" + unpaid is allowed: the two fields are uncorrelated.
	assert.NoError(t, ValidateStatusUpdate("delivered", "pending"))

	for _, bad := range []string{"ogiltig", "Processing", "PENDING", "ny"} {
		err := ValidateStatusUpdate(bad, "")
		require.Error(t, err, "status %q", bad)
		assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
	}

	err := ValidateStatusUpdate("", "swish")
	require.Error(t, err)
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))

	err = ValidateStatusUpdate("", "")
	require.Error(t, err)
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
}

func TestBuildOrderLinesComputesTotal(t *testing.T) {
	milk := models.Product{ID: primitive.NewObjectID(), Name: "Mjölk", Price: 15}
	butter := models.Product{ID: primitive.NewObjectID(), Name: "Smör", Price: 49}
	store := &fakeProducts{products: map[primitive.ObjectID]models.Product{
		milk.ID:   milk,
		butter.ID: butter,
	}}

	lines, total, err := BuildOrderLines(context.Background(), store, []OrderLineRequest{
		{Product: milk.ID.Hex(), Quantity: 2},
		{Product: butter.ID.Hex(), Quantity: 1},
	})

	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 2*15.0+49.0, total)
	assert.Equal(t, milk.ID, lines[0].Product)
	assert.Equal(t, 15.0, lines[0].Price, "unit price snapshotted from the product")
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestBuildOrderLinesRejectsBadInput(t *testing.T) {
	milk := models.Product{ID: primitive.NewObjectID(), Price: 15}
	store := &fakeProducts{products: map[primitive.ObjectID]models.Product{milk.ID: milk}}

	cases := []struct {
		name  string
		lines []OrderLineRequest
	}{
		{"empty order", nil},
		{"zero quantity", []OrderLineRequest{{Product: milk.ID.Hex(), Quantity: 0}}},
		{"negative quantity", []OrderLineRequest{{Product: milk.ID.Hex(), Quantity: -2}}},
		{"malformed id", []OrderLineRequest{{Product: "not-an-id", Quantity: 1}}},
		{"unknown product", []OrderLineRequest{{Product: primitive.NewObjectID().Hex(), Quantity: 1}}},
	}
	for _, tc := range cases {
		_, _, err := BuildOrderLines(context.Background(), store, tc.lines)
		require.Error(t, err, tc.name)
		assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err), tc.name)
	}
}
