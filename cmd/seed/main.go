// Seeds the database from the JSON files under data/, resolving catalog
// names to record ids the same way the API does at runtime.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"hakim-livs-backend/config"
	"hakim-livs-backend/internal/models"
	"hakim-livs-backend/internal/service"
	"hakim-livs-backend/internal/store"
	"hakim-livs-backend/internal/util"
)

type seedProduct struct {
	Name         string   `json:"namn"`
	Description  string   `json:"beskrivning"`
	Price        float64  `json:"pris"`
	Categories   []string `json:"kategorier"`
	Brand        string   `json:"varumarke"`
	Supplier     string   `json:"leverantor"`
	ComparePrice string   `json:"jamforpris"`
	Ingredients  string   `json:"innehallsforteckning"`
	Image        string   `json:"bild"`
	Quantity     string   `json:"mangd"`
}

func main() {
	dataDir := flag.String("data", "data", "directory with categories.json, suppliers.json and products.json")
	flag.Parse()

	cfg := config.Load()
	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	ctx := context.Background()
	db, err := store.NewStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(context.Background())

	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}
	if err := db.ClearSeedData(ctx); err != nil {
		log.Fatalf("Failed to clear old data: %v", err)
	}

	categories := loadNames(*dataDir + "/categories.json")
	suppliers := loadNames(*dataDir + "/suppliers.json")

	var products []seedProduct
	loadJSON(*dataDir+"/products.json", &products)

	// Catalog names from the data files go in verbatim; only names first
	// seen on a product pass through the resolver's formatting.
	seedCatalog(ctx, db, models.KindCategory, categories)
	seedCatalog(ctx, db, models.KindSupplier, suppliers)

	resolver := service.NewResolver(db)

	for _, sp := range products {
		product := models.Product{
			Name:         sp.Name,
			Description:  sp.Description,
			Price:        sp.Price,
			ComparePrice: sp.ComparePrice,
			Ingredients:  sp.Ingredients,
			Image:        sp.Image,
			Quantity:     sp.Quantity,
		}
		for _, name := range sp.Categories {
			res, err := resolver.Resolve(ctx, models.KindCategory, name)
			if err != nil {
				log.Fatalf("Failed to resolve category %q: %v", name, err)
			}
			product.Categories = append(product.Categories, res.ID)
		}
		if sp.Brand != "" {
			res, err := resolver.Resolve(ctx, models.KindBrand, sp.Brand)
			if err != nil {
				log.Fatalf("Failed to resolve brand %q: %v", sp.Brand, err)
			}
			product.Brand = &res.ID
		}
		supplierName := sp.Supplier
		if supplierName == "" {
			supplierName = "Ingen Leverantör Angiven"
		}
		res, err := resolver.Resolve(ctx, models.KindSupplier, supplierName)
		if err != nil {
			log.Fatalf("Failed to resolve supplier %q: %v", supplierName, err)
		}
		product.Supplier = &res.ID

		if err := db.InsertProduct(ctx, &product); err != nil {
			log.Fatalf("Failed to insert product %q: %v", sp.Name, err)
		}
	}

	seedAdmin(ctx, db, cfg)

	log.Printf("Seed complete: %d categories, %d suppliers, %d products",
		len(categories), len(suppliers), len(products))
}

func seedCatalog(ctx context.Context, db *store.Store, kind models.CatalogKind, names []string) {
	for _, name := range names {
		if _, err := db.InsertCatalog(ctx, kind, name); err != nil {
			if db.IsDuplicateName(err) {
				continue
			}
			log.Fatalf("Failed to seed %s %q: %v", kind, name, err)
		}
	}
}

// seedAdmin creates the admin account when ADMIN_USERNAME and ADMIN_PASSWORD
// are set. An already existing username is fine.
func seedAdmin(ctx context.Context, db *store.Store, cfg *config.Config) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin := models.User{
		Username: username,
		Email:    strings.ToLower(username) + "@hakim-livs.se",
		Password: string(hashed),
		IsAdmin:  true,
	}
	if err := db.InsertUser(ctx, &admin); err != nil {
		log.Printf("Admin user not created (may already exist): %v", err)
		return
	}
	log.Printf("Admin user %q created", username)
}

func loadNames(path string) []string {
	var records []struct {
		Name string `json:"namn"`
	}
	loadJSON(path, &records)
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	return names
}

func loadJSON(path string, out interface{}) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Fatalf("Failed to parse %s: %v", path, err)
	}
}
