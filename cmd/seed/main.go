package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"agrimarket/internal/auth"
	"agrimarket/internal/config"
	"agrimarket/internal/db"
	"agrimarket/internal/errors"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
	"agrimarket/internal/service"
)

type seedFarmer struct {
	name     string
	email    string
	password string
	crops    []service.CropCreate
}

var farmers = []seedFarmer{
	{
		name:     "Asha Patil",
		email:    "asha@agrimarket.local",
		password: "harvest1",
		crops: []service.CropCreate{
			{Crop: "Wheat", Quantity: 100, Location: "Pune", Price: 25, Category: model.CategoryGrain},
			{Crop: "Turmeric", Quantity: 40, Location: "Pune", Price: 120, Category: model.CategorySpice},
		},
	},
	{
		name:     "Ravi Kumar",
		email:    "ravi@agrimarket.local",
		password: "harvest2",
		crops: []service.CropCreate{
			{Crop: "Tomato", Quantity: 250, Location: "Nashik", Price: 18, Category: model.CategoryVegetable},
			{Crop: "Mango", Quantity: 80, Location: "Ratnagiri", Price: 90, Category: model.CategoryFruit, Description: "Alphonso, tree-ripened"},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load(".env", "../../.env")
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Crop{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	cropRepo := repository.NewCropRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	cropService := service.NewCropService(cropRepo, userRepo, nil)

	ctx := context.Background()
	created := 0
	for _, f := range farmers {
		user, _, err := authService.Register(ctx, f.name, f.email, f.password, model.UserTypeFarmer)
		if err == errors.ErrEmailTaken {
			log.Printf("Farmer %s already seeded, skipping", f.email)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to seed farmer %s: %v", f.email, err)
		}

		for _, c := range f.crops {
			if _, err := cropService.Create(ctx, user.ID, c); err != nil {
				log.Fatalf("Failed to seed crop %q for %s: %v", c.Crop, f.email, err)
			}
			created++
		}
	}

	log.Printf("Seed complete: %d crop listings created", created)
}
