package main // Seeds demo accounts and ratings for local development

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/service-connect/internal/config"
	"github.com/iliyamo/service-connect/internal/database"
	"github.com/iliyamo/service-connect/internal/model"
	"github.com/iliyamo/service-connect/internal/repository"
)

// seedProvider describes one demo provider account.
type seedProvider struct {
	name        string
	email       string
	serviceType string
	location    string
	phone       string
}

var demoProviders = []seedProvider{
	{"John Mechanic", "john.mechanic@example.com", "mechanic", "Kinoo", "+254712345678"},
	{"Mary Tyre Guy", "mary.tyres@example.com", "tyre repair", "Kasarani", "+254723456789"},
	{"Peter Electrician", "peter.sparks@example.com", "electrician", "Thika", "+254734567890"},
}

const demoPassword = "password123"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	accounts := repository.NewAccountRepo(db)
	ratings := repository.NewRatingRepo(db)

	providerIDs := make([]uint64, 0, len(demoProviders))
	for _, p := range demoProviders {
		id, err := ensureProvider(ctx, db, accounts, p, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("seed provider %q: %v", p.name, err)
		}
		providerIDs = append(providerIDs, id)
	}

	clientID, err := ensureClient(ctx, db, accounts, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("seed client: %v", err)
	}

	// A sample review per provider; Upsert keeps reruns idempotent.
	scores := []int{5, 4, 3}
	comments := []string{"fixed my brakes same day", "quick puncture repair", "rewired the garage socket"}
	for i, pid := range providerIDs {
		if _, err := ratings.Upsert(ctx, pid, clientID, scores[i], comments[i]); err != nil {
			log.Fatalf("seed rating for provider %d: %v", pid, err)
		}
	}

	log.Printf("seeded %d providers, 1 client and %d ratings", len(providerIDs), len(providerIDs))
}

// ensureProvider inserts a demo provider unless an account with the same
// name, phone and role already exists, mirroring how repeated seeding runs
// must not duplicate data.
func ensureProvider(ctx context.Context, db *sql.DB, accounts *repository.AccountRepo, p seedProvider, cost int) (uint64, error) {
	var id uint64
	err := db.QueryRowContext(ctx,
		"SELECT id FROM accounts WHERE name=? AND phone=? AND role=? LIMIT 1",
		p.name, p.phone, model.RoleProvider).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	return accounts.Create(ctx, repository.NewAccount{
		Name:        p.name,
		Email:       p.email,
		Password:    demoPassword,
		Role:        model.RoleProvider,
		ServiceType: &p.serviceType,
		Location:    &p.location,
		Phone:       &p.phone,
	}, cost)
}

// ensureClient inserts the demo client account used as the rater.
func ensureClient(ctx context.Context, db *sql.DB, accounts *repository.AccountRepo, cost int) (uint64, error) {
	var id uint64
	err := db.QueryRowContext(ctx,
		"SELECT id FROM accounts WHERE email=? LIMIT 1", "demo.client@example.com").Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}
	return accounts.Create(ctx, repository.NewAccount{
		Name:     "Demo Client",
		Email:    "demo.client@example.com",
		Password: demoPassword,
		Role:     model.RoleClient,
	}, cost)
}
