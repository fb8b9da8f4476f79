package main

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"ktucyber/internal/config"
	"ktucyber/internal/db"
	"ktucyber/internal/model"
	"ktucyber/internal/repository"
	"ktucyber/internal/service"
)

var universities = []model.University{
	{Name: "Kaunas University of Technology", Description: "Technical university in Kaunas, Lithuania."},
	{Name: "Vilnius University", Description: "Oldest university in the Baltic states."},
	{Name: "Vilnius Gediminas Technical University", Description: "Engineering-focused university in Vilnius."},
}

var subjects = []model.Subject{
	{Name: "Object-Oriented Programming", Code: "T120B165", Description: "Classes, inheritance, and polymorphism with practical assignments."},
	{Name: "Data Structures and Algorithms", Code: "T120B201", Description: "Core data structures, sorting, and graph algorithms."},
	{Name: "Databases", Code: "T120B145", Description: "Relational modeling, SQL, and transactions."},
	{Name: "Computer Networks", Code: "T120B431", Description: "Network protocols, routing, and socket programming."},
	{Name: "Operating Systems", Code: "T120B442", Description: "Processes, memory, and file systems."},
	{Name: "Discrete Mathematics", Code: "P170B115", Description: "Logic, sets, combinatorics, and graph theory."},
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.University{}, &model.Subject{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	taxRepo := repository.NewTaxonomyRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for i := range universities {
		u := universities[i]
		u.Slug = service.Slugify(u.Name)
		if err := taxRepo.CreateUniversity(ctx, &u); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			log.Fatalf("Failed to seed university %q: %v", u.Name, err)
		}
		created++
	}
	log.Printf("Universities: %d created, %d already present", created, skipped)

	created, skipped = 0, 0
	for i := range subjects {
		s := subjects[i]
		s.Slug = service.Slugify(s.Name)
		if err := taxRepo.CreateSubject(ctx, &s); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				skipped++
				continue
			}
			log.Fatalf("Failed to seed subject %q: %v", s.Name, err)
		}
		created++
	}
	log.Printf("Subjects: %d created, %d already present", created, skipped)

	log.Println("Seed completed successfully!")
}
