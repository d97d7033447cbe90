package main

import (
	"context"
	"fmt"
	"time"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/database"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/logger"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/model"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/repository"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	studentService := service.NewStudentService(userRepo)

	fmt.Println("=== Seeding 50 Students ===")

	names := []string{
		"Aarav Sharma", "Bhavya Reddy", "Chetan Kumar", "Divya Nair", "Eshan Gupta",
		"Farida Khan", "Gaurav Singh", "Harini Iyer", "Ishaan Patel", "Jyoti Verma",
		"Kiran Rao", "Lakshmi Menon", "Manish Joshi", "Neha Agarwal", "Omkar Kulkarni",
		"Pooja Desai", "Qadir Sheikh", "Ravi Chandra", "Sneha Pillai", "Tarun Mehta",
		"Uma Devi", "Vikram Bhat", "Wasim Akhtar", "Yamini Krishnan", "Zara Ali",
		"Aditi Saxena", "Bharat Yadav", "Chitra Raman", "Deepak Malhotra", "Ela Srinivasan",
		"Firoz Ahmed", "Gita Hegde", "Hari Prasad", "Indira Naidu", "Jatin Kapoor",
		"Kavya Shetty", "Lalit Tiwari", "Meera Bajaj", "Nikhil Dutta", "Ojas Pandey",
		"Priya Mishra", "Rahul Bose", "Sanjana Rawat", "Tanvi Chopra", "Uday Shankar",
		"Vani Subramaniam", "Waseem Raja", "Yash Thakur", "Zoya Hussain", "Anand Murthy",
	}

	successCount := 0
	for i, name := range names {
		student := &model.User{
			Email:        fmt.Sprintf("student%d@campus.test", i+1),
			Name:         name,
			PasswordHash: "changeme123", // Service hashes it.
		}

		if err := studentService.Create(ctx, student); err != nil {
			fmt.Printf("Error creating student %s (%s): %v\n", student.Name, student.Email, err)
		} else {
			successCount++
			if (i+1)%10 == 0 {
				fmt.Printf("Created %d students...\n", i+1)
			}
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
