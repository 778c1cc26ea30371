package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CatalogKind selects one of the three named lookup collections a product
// can reference.
type CatalogKind string

const (
	KindCategory CatalogKind = "categories"
	KindBrand    CatalogKind = "brands"
	KindSupplier CatalogKind = "suppliers"
)

// CatalogRecord is a Category, Brand or Supplier document. All three share
// the same shape: an id and a name.
type CatalogRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"namn" json:"namn"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password,omitempty"`
	IsAdmin  bool               `bson:"isAdmin" json:"isAdmin"`
}

// UserRef is the trimmed user shape embedded in expanded order responses.
type UserRef struct {
	ID       primitive.ObjectID `bson:"_id" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}

type Product struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name         string               `bson:"namn" json:"namn"`
	Description  string               `bson:"beskrivning" json:"beskrivning"`
	Price        float64              `bson:"pris" json:"pris"`
	Categories   []primitive.ObjectID `bson:"kategorier" json:"kategorier"`
	Brand        *primitive.ObjectID  `bson:"varumarke,omitempty" json:"varumarke,omitempty"`
	Supplier     *primitive.ObjectID  `bson:"leverantor,omitempty" json:"leverantor,omitempty"`
	ComparePrice string               `bson:"jamforpris" json:"jamforpris"`
	Ingredients  string               `bson:"innehallsforteckning" json:"innehallsforteckning"`
	Image        string               `bson:"bild" json:"bild"`
	Quantity     string               `bson:"mangd" json:"mangd"`
	CreatedAt    time.Time            `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time            `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CatalogRef is the populated form of a catalog reference.
type CatalogRef struct {
	ID   primitive.ObjectID `json:"_id"`
	Name string             `json:"namn"`
}

// ProductView is a product with its catalog references expanded for client
// consumption.
type ProductView struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"namn"`
	Description  string             `json:"beskrivning"`
	Price        float64            `json:"pris"`
	Categories   []CatalogRef       `json:"kategorier"`
	Brand        *CatalogRef        `json:"varumarke,omitempty"`
	Supplier     *CatalogRef        `json:"leverantor,omitempty"`
	ComparePrice string             `json:"jamforpris"`
	Ingredients  string             `json:"innehallsforteckning"`
	Image        string             `json:"bild"`
	Quantity     string             `json:"mangd"`
	CreatedAt    time.Time          `json:"createdAt,omitempty"`
	UpdatedAt    time.Time          `json:"updatedAt,omitempty"`
}

// Order statuses. Status and payment status are independent fields; nothing
// couples them.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// OrderLine is one ordered product with its quantity and the unit price at
// the time the order was placed.
type OrderLine struct {
	Product  primitive.ObjectID `bson:"produkt" json:"produkt"`
	Quantity int                `bson:"antal" json:"antal"`
	Price    float64            `bson:"pris" json:"pris"`
}

type Order struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	User          *primitive.ObjectID `bson:"anvandare,omitempty" json:"anvandare,omitempty"`
	Lines         []OrderLine         `bson:"produkter" json:"produkter"`
	Total         float64             `bson:"totalsumma" json:"totalsumma"`
	FirstName     string              `bson:"fornamn" json:"fornamn"`
	LastName      string              `bson:"efternamn" json:"efternamn"`
	Street        string              `bson:"gatuadress" json:"gatuadress"`
	PostalCode    string              `bson:"postnr" json:"postnr"`
	City          string              `bson:"postort" json:"postort"`
	Phone         string              `bson:"mobil" json:"mobil"`
	Email         string              `bson:"mejl" json:"mejl"`
	Note          string              `bson:"anmarkning,omitempty" json:"anmarkning,omitempty"`
	Status        string              `bson:"status" json:"status"`
	PaymentStatus string              `bson:"betalningsStatus" json:"betalningsStatus"`
	CreatedAt     time.Time           `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt     time.Time           `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// OrderLineView carries the full product document in place of its id.
// Products deleted since the order was placed come through as nil.
type OrderLineView struct {
	Product  *Product `json:"produkt"`
	Quantity int      `json:"antal"`
	Price    float64  `json:"pris"`
}

// OrderView is an order with product and user references expanded.
type OrderView struct {
	ID            primitive.ObjectID `json:"_id"`
	User          *UserRef           `json:"anvandare,omitempty"`
	Lines         []OrderLineView    `json:"produkter"`
	Total         float64            `json:"totalsumma"`
	FirstName     string             `json:"fornamn"`
	LastName      string             `json:"efternamn"`
	Street        string             `json:"gatuadress"`
	PostalCode    string             `json:"postnr"`
	City          string             `json:"postort"`
	Phone         string             `json:"mobil"`
	Email         string             `json:"mejl"`
	Note          string             `json:"anmarkning,omitempty"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"betalningsStatus"`
	CreatedAt     time.Time          `json:"createdAt,omitempty"`
	UpdatedAt     time.Time          `json:"updatedAt,omitempty"`
}
