// Command seed fills a development database with therapist profiles and a month of demo
// check-ins and bookings for one user. Profiles are written to MongoDB only; sign-in still needs
// matching Firebase Auth accounts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"calmwave/config"
	"calmwave/database"
	bookingRepo "calmwave/database/repository/booking"
	checkinRepo "calmwave/database/repository/checkin"
	userRepoPkg "calmwave/database/repository/user"
	"calmwave/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	userID := flag.String("user", "", "uid of an existing user profile to attach demo check-ins and bookings to")
	therapists := flag.Int("therapists", 5, "number of therapist profiles to create")
	days := flag.Int("days", 30, "days of check-in history to generate")
	reset := flag.Bool("reset", false, "clear seeded collections first")
	flag.Parse()

	config.LoadConfig()
	if config.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := database.InitDB(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(context.Background())

	if *reset {
		for _, name := range []string{"checkins", "bookings"} {
			if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("Failed to clear %s: %v", name, err)
			}
		}
		if _, err := db.Collection("users").DeleteMany(ctx, bson.M{"role": models.RoleTherapist, "email": bson.M{"$regex": "@example\\.com$"}}); err != nil {
			log.Fatalf("Failed to clear seeded therapists: %v", err)
		}
	}

	users := userRepoPkg.NewMongoUserRepo(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	hospitals := []string{"Nairobi Hospital", "Aga Khan", "Mater Hospital", "Kenyatta National"}

	var seeded []models.User
	for i := 1; i <= *therapists; i++ {
		t := models.User{
			ID:            "seed-therapist-" + uuid.NewString()[:8],
			Email:         fmt.Sprintf("therapist_%d@example.com", i),
			Role:          models.RoleTherapist,
			FullName:      fmt.Sprintf("Dr. Therapist %d", i),
			ContactNumber: fmt.Sprintf("0700%06d", i),
			Experience:    fmt.Sprintf("%d years", 2+rng.Intn(15)),
			HospitalName:  hospitals[rng.Intn(len(hospitals))],
		}
		if err := users.Create(ctx, &t); err != nil {
			log.Fatalf("Failed to insert therapist %s: %v", t.Email, err)
		}
		seeded = append(seeded, t)
	}
	fmt.Printf("Inserted %d therapists\n", len(seeded))

	if *userID == "" {
		return
	}
	owner, err := users.GetByID(ctx, *userID)
	if err != nil {
		log.Fatalf("User %s: %v", *userID, err)
	}

	checkins := checkinRepo.NewMongoCheckInRepo(db)
	start := time.Now().UTC().AddDate(0, 0, -*days)
	for d := 0; d < *days; d++ {
		alcohol := models.AlcoholNo
		if rng.Intn(5) == 0 {
			alcohol = models.AlcoholYes
		}
		c := models.CheckIn{
			ID:        uuid.NewString(),
			OwnerID:   owner.ID,
			Email:     owner.Email,
			Emotion:   models.EmotionLabels[rng.Intn(len(models.EmotionLabels))],
			Alcohol:   alcohol,
			Timestamp: start.AddDate(0, 0, d).Add(time.Duration(8+rng.Intn(12)) * time.Hour),
		}
		if err := checkins.Create(ctx, &c); err != nil {
			log.Fatalf("Failed to insert check-in: %v", err)
		}
	}
	fmt.Printf("Inserted %d check-ins for %s\n", *days, owner.Email)

	bookings := bookingRepo.NewMongoBookingRepo(db)
	for i, t := range seeded {
		at := time.Now().AddDate(0, 0, i*7-14).Truncate(time.Hour)
		b := models.Booking{
			ID:             uuid.NewString(),
			TherapistID:    t.ID,
			TherapistEmail: t.Email,
			TherapistName:  t.FullName,
			UserID:         owner.ID,
			UserEmail:      owner.Email,
			UserName:       owner.FullName,
			UserContact:    owner.ContactNumber,
			ScheduledAt:    at.Format(time.RFC3339),
			Status:         models.BookingPending,
		}
		if err := bookings.Create(ctx, &b); err != nil {
			log.Fatalf("Failed to insert booking: %v", err)
		}
		if at.Before(time.Now()) {
			if err := bookings.UpdateStatus(ctx, b.ID, models.BookingApproved); err != nil {
				log.Fatalf("Failed to approve booking: %v", err)
			}
			rating := float64(3 + rng.Intn(3))
			if err := bookings.SetFeedback(ctx, b.ID, &rating, "Seeded feedback"); err != nil {
				log.Fatalf("Failed to add feedback: %v", err)
			}
		}
	}
	fmt.Printf("Inserted %d bookings\n", len(seeded))
}
