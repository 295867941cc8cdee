package main

import (
	"context"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/skillnest-io/course-service/internal/auth"
	"github.com/skillnest-io/course-service/internal/config"
	"github.com/skillnest-io/course-service/internal/models"
	"github.com/skillnest-io/course-service/internal/repositories/postgres"
	"github.com/skillnest-io/course-service/pkg"
)

var sampleCourses = []models.Course{
	{
		Title:       "Complete React Native Course",
		Description: "Master React Native & Expo to build professional Android & iOS Apps.",
		Price:       99.99,
		Instructor:  "John Doe",
		Category:    "Mobile Development",
		Thumbnail:   "https://images.unsplash.com/photo-1517694712202-14dd9538aa97?ixlib=rb-1.2.1&auto=format&fit=crop&w=1350&q=80",
		Duration:    "12 Hours",
	},
	{
		Title:       "Advanced NodeJS Guide",
		Description: "Learn advanced concepts in NodeJS, Express, and MongoDB.",
		Price:       89.99,
		Instructor:  "Jane Smith",
		Category:    "Backend Development",
		Thumbnail:   "https://images.unsplash.com/photo-1555099962-4199c345e5dd?ixlib=rb-1.2.1&auto=format&fit=crop&w=1350&q=80",
		Duration:    "8 Hours",
	},
	{
		Title:       "UI/UX Design Masterclass",
		Description: "Learn to design beautiful interfaces using Figma.",
		Price:       79.99,
		Instructor:  "Alice Johnson",
		Category:    "Design",
		Thumbnail:   "https://images.unsplash.com/photo-1561070791-2526d30994b5?ixlib=rb-1.2.1&auto=format&fit=crop&w=1350&q=80",
		Duration:    "10 Hours",
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	destroy := len(os.Args) > 1 && os.Args[1] == "-d"

	// Enrollments first, they reference both tables.
	if err := db.Exec("DELETE FROM enrollments").Error; err != nil {
		log.Fatalf("Failed to clear enrollments: %v", err)
	}
	if err := db.Exec("DELETE FROM courses").Error; err != nil {
		log.Fatalf("Failed to clear courses: %v", err)
	}
	if err := db.Exec("DELETE FROM users").Error; err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}
	if err := db.Exec("DELETE FROM audit_logs").Error; err != nil {
		log.Fatalf("Failed to clear audit logs: %v", err)
	}

	if destroy {
		log.Println("Data destroyed")
		return
	}

	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{DB: db})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}
	repo := repoManager.GetRepository()
	ctx := context.Background()

	adminEmail := getEnv("SEED_ADMIN_EMAIL", "admin@skillnest.io")
	adminPassword := getEnv("SEED_ADMIN_PASSWORD", "admin123")

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &models.User{
		ID:       uuid.New().String(),
		Name:     "Admin",
		Email:    adminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := repo.User().Create(ctx, nil, admin); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	for i := range sampleCourses {
		course := sampleCourses[i]
		course.ID = uuid.New().String()
		if err := repo.Course().Create(ctx, nil, &course); err != nil {
			log.Fatalf("Failed to create course %q: %v", course.Title, err)
		}
	}

	log.Printf("Data imported: %d courses, admin %s", len(sampleCourses), adminEmail)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
