package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/delishapp/delish-backend/config"
	"github.com/delishapp/delish-backend/internal/app/model"
	"github.com/delishapp/delish-backend/internal/app/repository"
	"github.com/delishapp/delish-backend/internal/db"
	"github.com/delishapp/delish-backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Seeds the database with sample data, or imports stores from an XLSX
// file when a path is given:
//
//	go run cmd/seed/main.go              # sample users and stores
//	go run cmd/seed/main.go stores.xlsx  # bulk import from spreadsheet
//
// Expected XLSX columns: name, description, address, tags (comma
// separated), longitude, latitude. The first row is treated as a header.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())

	owner, err := ensureSeedUser(userRepo)
	if err != nil {
		log.Fatal("Failed to create seed user:", err)
	}

	if len(os.Args) > 1 {
		importFromXLSX(storeRepo, owner.ID, os.Args[1])
		return
	}

	seedSampleStores(storeRepo, owner.ID)
}

func ensureSeedUser(userRepo repository.UserRepository) (*model.User, error) {
	const email = "owner@delish.app"

	if user, err := userRepo.FindByEmail(email); err == nil {
		return user, nil
	}

	hash, err := util.HashPassword("password123")
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         "Sample Owner",
	}
	if err := userRepo.Create(user); err != nil {
		return nil, err
	}

	fmt.Printf("Created seed user: %s\n", email)
	return user, nil
}

func seedSampleStores(storeRepo repository.StoreRepository, ownerID uint) {
	lat := func(v float64) *float64 { return &v }

	stores := []model.Store{
		{
			UserID:      ownerID,
			Name:        "Mister Dumpling",
			Description: "Hand-folded dumplings, steamed or fried.",
			Address:     "432 Queen St W, Toronto",
			Latitude:    lat(43.6487),
			Longitude:   lat(-79.3975),
			Tags:        model.StringArray{"Restaurant", "Family Friendly"},
		},
		{
			UserID:      ownerID,
			Name:        "Java Jive",
			Description: "Single-origin pour-overs and day-old jokes.",
			Address:     "781 College St, Toronto",
			Latitude:    lat(43.6549),
			Longitude:   lat(-79.4195),
			Tags:        model.StringArray{"Wifi", "Open Late"},
		},
		{
			UserID:      ownerID,
			Name:        "The Velvet Taco",
			Description: "Late-night tacos with a line out the door.",
			Address:     "226 Ossington Ave, Toronto",
			Latitude:    lat(43.6468),
			Longitude:   lat(-79.4203),
			Tags:        model.StringArray{"Restaurant", "Open Late", "Vegetarian"},
		},
	}

	created := 0
	for i := range stores {
		if err := storeRepo.Create(&stores[i]); err != nil {
			fmt.Printf("Skipping %q: %v\n", stores[i].Name, err)
			continue
		}
		created++
	}

	fmt.Printf("Seeded %d sample stores\n", created)
}

func importFromXLSX(storeRepo repository.StoreRepository, ownerID uint, filePath string) {
	fmt.Printf("Reading XLSX file: %s\n", filePath)

	stores, err := readStoresFromXLSX(filePath, ownerID)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total stores to import: %d\n", len(stores))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range stores {
		if err := storeRepo.Create(&stores[i]); err != nil {
			fmt.Printf("Skipping %q: %v\n", stores[i].Name, err)
			continue
		}
		imported++

		if imported%1000 == 0 {
			fmt.Printf("Imported %d stores...\n", imported)
		}
	}

	fmt.Printf("Import completed: %d of %d stores\n", imported, len(stores))
}

func readStoresFromXLSX(filePath string, ownerID uint) ([]model.Store, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var stores []model.Store
	seen := make(map[string]bool)
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < 6 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		description := strings.TrimSpace(row[1])
		address := strings.TrimSpace(row[2])
		tagsRaw := strings.TrimSpace(row[3])
		longitudeStr := strings.TrimSpace(row[4])
		latitudeStr := strings.TrimSpace(row[5])

		if name == "" || address == "" {
			skipped++
			continue
		}

		key := name + "|" + address
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		store := model.Store{
			UserID:      ownerID,
			Name:        name,
			Description: description,
			Address:     address,
		}

		if tagsRaw != "" {
			for _, tag := range strings.Split(tagsRaw, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					store.Tags = append(store.Tags, tag)
				}
			}
		}

		lng, errLng := strconv.ParseFloat(longitudeStr, 64)
		lat, errLat := strconv.ParseFloat(latitudeStr, 64)
		if errLng == nil && errLat == nil && lng != 0 && lat != 0 {
			store.Longitude = &lng
			store.Latitude = &lat
		}

		stores = append(stores, store)
	}

	fmt.Printf("Rows: %d, valid: %d, skipped: %d\n", len(rows)-1, len(stores), skipped)
	return stores, nil
}
