package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/digitallife/lessonhub/internal/adapters/database"
	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/infrastructure/clients/postgres"
	"github.com/digitallife/lessonhub/pkg/config"
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

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				reports,
				comments,
				favorites,
				lessons,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	lessonRepo := database.NewLessonAdapter(pgClient)
	userRepo := database.NewUserAdapter(pgClient)

	now := time.Now().UTC()

	// 1. Seed users
	users := []entities.User{
		{ID: uuid.New().String(), Email: "admin@lessonhub.dev", Name: "Site Admin", Role: entities.RoleAdmin, IsPremium: true, CreatedAt: now, LastLoginAt: now},
		{ID: uuid.New().String(), Email: "amara@lessonhub.dev", Name: "Amara Obi", Role: entities.RoleUser, IsPremium: true, CreatedAt: now, LastLoginAt: now},
		{ID: uuid.New().String(), Email: "tunde@lessonhub.dev", Name: "Tunde Ajayi", Role: entities.RoleUser, IsPremium: false, CreatedAt: now, LastLoginAt: now},
	}
	for _, u := range users {
		if err := userRepo.Create(ctx, &u); err != nil {
			log.Printf("Failed to create user %s: %v", u.Email, err)
		}
	}

	// 2. Seed a grief corpus big enough to exercise pagination: thirteen
	// public free lessons in one category fill one default page plus one.
	lessons := []*entities.Lesson{}
	for i := 1; i <= 13; i++ {
		lessons = append(lessons, &entities.Lesson{
			ID:               uuid.New().String(),
			Title:            fmt.Sprintf("Living with loss, part %d", i),
			ShortDescription: fmt.Sprintf("Week %d of a gentle walk through grief.", i),
			Category:         "grief",
			EmotionalTone:    "hopeful",
			Visibility:       entities.VisibilityPublic,
			AccessLevel:      entities.AccessFree,
			CreatorEmail:     "amara@lessonhub.dev",
			CreatedAt:        now.Add(-time.Duration(i) * 24 * time.Hour),
		})
	}

	// 3. A handful of other categories, tones and access levels
	extra := []*entities.Lesson{
		{
			ID:               uuid.New().String(),
			Title:            "Starting over after a career break",
			ShortDescription: "What a decade away from work taught me about beginnings.",
			Category:         "career",
			EmotionalTone:    "encouraging",
			Visibility:       entities.VisibilityPublic,
			AccessLevel:      entities.AccessFree,
			CreatorEmail:     "tunde@lessonhub.dev",
			CreatedAt:        now.Add(-30 * 24 * time.Hour),
		},
		{
			ID:               uuid.New().String(),
			Title:            "Rebuilding trust in a marriage",
			ShortDescription: "A candid account of two hard years and what held us together.",
			Category:         "relationships",
			EmotionalTone:    "raw",
			Visibility:       entities.VisibilityPublic,
			AccessLevel:      entities.AccessPremium,
			CreatorEmail:     "amara@lessonhub.dev",
			CreatedAt:        now.Add(-14 * 24 * time.Hour),
		},
		{
			ID:               uuid.New().String(),
			Title:            "Grieving a parent while raising children",
			ShortDescription: "Holding both ends of the family line at once.",
			Category:         "grief",
			EmotionalTone:    "raw",
			Visibility:       entities.VisibilityPublic,
			AccessLevel:      entities.AccessPremium,
			CreatorEmail:     "amara@lessonhub.dev",
			CreatedAt:        now.Add(-7 * 24 * time.Hour),
		},
		{
			ID:               uuid.New().String(),
			Title:            "Draft: unfinished thoughts on forgiveness",
			ShortDescription: "Not ready to share this one yet.",
			Category:         "relationships",
			EmotionalTone:    "hopeful",
			Visibility:       entities.VisibilityPrivate,
			AccessLevel:      entities.AccessFree,
			CreatorEmail:     "tunde@lessonhub.dev",
			CreatedAt:        now.Add(-2 * 24 * time.Hour),
		},
	}
	lessons = append(lessons, extra...)

	created := 0
	for _, l := range lessons {
		if err := lessonRepo.Create(ctx, l); err != nil {
			log.Printf("Failed to create lesson %q: %v", l.Title, err)
			continue
		}
		created++
	}

	log.Printf("Seeding complete: %d users, %d lessons", len(users), created)
}
