package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/medmarket/backend/internal/adapters/database"
	"github.com/medmarket/backend/internal/adapters/search"
	"github.com/medmarket/backend/internal/application/services"
	"github.com/medmarket/backend/internal/domain/entities"
	"github.com/medmarket/backend/internal/infrastructure/clients/postgres"
	"github.com/medmarket/backend/internal/infrastructure/clients/typesense"
	"github.com/medmarket/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		searchRepo.InitSchema(context.Background())
	}

	userRepo := database.NewUserAdapter(pgClient)
	adRepo := database.NewAdAdapter(pgClient)
	feedbackRepo := database.NewFeedbackAdapter(pgClient)
	ratingRepo := database.NewRatingAdapter(pgClient)

	var ratingService *services.RatingService
	if searchRepo != nil {
		ratingService = services.NewRatingService(feedbackRepo, ratingRepo, userRepo, searchRepo, nil)
	} else {
		ratingService = services.NewRatingService(feedbackRepo, ratingRepo, userRepo, nil, nil)
	}

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				favorites,
				appointments,
				feedback,
				ads,
				users,
				categories,
				cities
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed Cities
	cities := map[string]string{}
	for _, name := range []string{"Lagos", "Abuja", "Ibadan", "Port Harcourt"} {
		id := uuid.New().String()
		if _, err := pgClient.DB().ExecContext(ctx,
			`INSERT INTO cities (id, name) VALUES ($1, $2)`, id, name); err != nil {
			log.Printf("Failed to create city %s: %v", name, err)
			continue
		}
		cities[name] = id
	}

	// 2. Seed Categories
	categories := map[string]string{}
	for _, name := range []string{"Cardiology", "Dentistry", "Dermatology", "Pediatrics"} {
		id := uuid.New().String()
		if _, err := pgClient.DB().ExecContext(ctx,
			`INSERT INTO categories (id, name) VALUES ($1, $2)`, id, name); err != nil {
			log.Printf("Failed to create category %s: %v", name, err)
			continue
		}
		categories[name] = id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	// 3. Seed Doctors
	now := time.Now()
	lagosID := cities["Lagos"]
	abujaID := cities["Abuja"]
	doctors := []*entities.User{
		{ID: uuid.New().String(), Email: "grace.okafor@medmarket.example", PasswordHash: string(hash), FirstName: "Grace", LastName: "Okafor", Role: entities.RoleDoctor, CityID: &lagosID, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Email: "tunde.adeyemi@medmarket.example", PasswordHash: string(hash), FirstName: "Tunde", LastName: "Adeyemi", Role: entities.RoleDoctor, CityID: &lagosID, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Email: "amina.bello@medmarket.example", PasswordHash: string(hash), FirstName: "Amina", LastName: "Bello", Role: entities.RoleDoctor, CityID: &abujaID, CreatedAt: now, UpdatedAt: now},
	}
	for _, d := range doctors {
		if err := userRepo.Create(ctx, d); err != nil {
			log.Printf("Failed to create doctor %s: %v", d.Email, err)
		}
	}

	// 4. Seed Clients
	clients := []*entities.User{
		{ID: uuid.New().String(), Email: "chidi.eze@example.com", PasswordHash: string(hash), FirstName: "Chidi", LastName: "Eze", Role: entities.RoleClient, CityID: &lagosID, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), Email: "funke.alabi@example.com", PasswordHash: string(hash), FirstName: "Funke", LastName: "Alabi", Role: entities.RoleClient, CityID: &abujaID, CreatedAt: now, UpdatedAt: now},
	}
	for _, c := range clients {
		if err := userRepo.Create(ctx, c); err != nil {
			log.Printf("Failed to create client %s: %v", c.Email, err)
		}
	}

	// 5. Seed Ads
	ads := []*entities.Ad{
		{ID: uuid.New().String(), DoctorID: doctors[0].ID, CategoryID: categories["Cardiology"], Title: "Cardiology Consultation", Description: "Initial consultation including ECG review", Price: 25000, City: "Lagos", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), DoctorID: doctors[0].ID, CategoryID: categories["Cardiology"], Title: "Follow-up Visit", Description: "Review of treatment plan and test results", Price: 15000, City: "Lagos", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), DoctorID: doctors[1].ID, CategoryID: categories["Dentistry"], Title: "Dental Cleaning", Description: "Full cleaning and oral exam", Price: 18000, City: "Lagos", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New().String(), DoctorID: doctors[2].ID, CategoryID: categories["Pediatrics"], Title: "Child Wellness Check", Description: "Routine checkup for children under 12", Price: 12000, City: "Abuja", CreatedAt: now, UpdatedAt: now},
	}
	for _, ad := range ads {
		if err := adRepo.Create(ctx, ad); err != nil {
			log.Printf("Failed to create ad %s: %v", ad.Title, err)
		}
	}

	// 6. Seed Feedback through the service so ratings fan out
	feedbackService := services.NewFeedbackService(feedbackRepo, adRepo, userRepo, ratingService)
	seedFeedback := []struct {
		clientID string
		adID     string
		rating   float64
		text     string
	}{
		{clients[0].ID, ads[0].ID, 5, "Very thorough, explained everything clearly"},
		{clients[1].ID, ads[0].ID, 4, "Good experience, slight wait"},
		{clients[0].ID, ads[2].ID, 4.5, "Painless and quick"},
		{clients[1].ID, ads[3].ID, 5, "Wonderful with kids"},
	}
	for _, f := range seedFeedback {
		rating := f.rating
		if _, err := feedbackService.Add(ctx, f.clientID, f.adID, services.FeedbackInput{Rating: &rating, Text: f.text}); err != nil {
			log.Printf("Failed to create feedback on ad %s: %v", f.adID, err)
		}
	}

	// 7. Index doctors for suggestions
	if searchRepo != nil {
		for _, d := range doctors {
			doctor, err := userRepo.GetByID(ctx, d.ID)
			if err != nil {
				log.Printf("Failed to reload doctor %s: %v", d.ID, err)
				continue
			}
			if err := searchRepo.Index(ctx, doctor); err != nil {
				log.Printf("Failed to index doctor %s: %v", d.ID, err)
			}
		}
	}

	log.Printf("Seed complete: %d cities, %d categories, %d doctors, %d clients, %d ads, %d feedback entries",
		len(cities), len(categories), len(doctors), len(clients), len(ads), len(seedFeedback))
}
