package main

import (
	"flag"
	"log"
	"time"

	"inkstream/internal/auth"
	"inkstream/internal/database"
	"inkstream/internal/models"
	"inkstream/internal/services"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// This is a simple utility script to seed the database with topics, a
// couple of users and published articles for local development. In a
// production system provisioning happens through the identity service
// and the API.

func main() {
	var issueToken = flag.Bool("token", false, "Print a dev access token for the seeded author")
	var secret = flag.String("secret", "dev-secret", "JWT secret used when printing a token")
	flag.Parse()

	log.Printf("🌱 Inkstream Database Seeder")
	log.Printf("============================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	dbConfig := database.LoadConfig()
	if err := database.Connect(dbConfig); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	db := database.DB

	author := models.User{
		ID:          uuid.New(),
		Username:    "ada",
		DisplayName: "Ada Writes",
		Bio:         "Seeded author account",
		IsActive:    true,
	}
	if err := db.Where("username = ?", author.Username).FirstOrCreate(&author).Error; err != nil {
		log.Fatal("Failed to seed author:", err)
	}

	moderator := models.User{
		ID:          uuid.New(),
		Username:    "moderator",
		DisplayName: "Moderation",
		IsActive:    true,
		IsSuperuser: true,
	}
	if err := db.Where("username = ?", moderator.Username).FirstOrCreate(&moderator).Error; err != nil {
		log.Fatal("Failed to seed moderator:", err)
	}

	topics := services.NewTopicsService(db)
	topicNames := map[string]string{
		"golang":      "The Go programming language",
		"databases":   "Storage engines, SQL and data modeling",
		"writing":     "The craft of writing itself",
		"distributed": "Distributed systems and their failure modes",
	}

	seeded := make([]models.Topic, 0, len(topicNames))
	for name, description := range topicNames {
		var topic models.Topic
		err := db.Where("name = ?", name).First(&topic).Error
		if err != nil {
			created, err := topics.CreateTopic(name, description, true)
			if err != nil {
				log.Fatal("Failed to seed topic:", err)
			}
			topic = *created
			log.Printf("✅ Created topic: %s", name)
		}
		seeded = append(seeded, topic)
	}

	articles := services.NewArticlesService(db, services.NewRecommendationsService(db))
	titles := []string{
		"A field guide to slow queries",
		"What I learned shipping my first service",
		"Notes on writing every day",
	}
	for i, title := range titles {
		var existing models.Article
		if err := db.Where("title = ?", title).First(&existing).Error; err == nil {
			continue
		}

		topic := seeded[i%len(seeded)]
		article, err := articles.CreateArticle(author.ID, services.ArticleInput{
			Title:    title,
			Summary:  "Seeded article for local development.",
			Content:  "## Hello\n\nThis is seeded Markdown content.",
			TopicIDs: []uuid.UUID{topic.ID},
		})
		if err != nil {
			log.Fatal("Failed to seed article:", err)
		}

		// Publish through the moderation path
		principal := &auth.Principal{UserID: moderator.ID, IsActive: true, IsSuperuser: true}
		if err := articles.TransitionStatus(article.ID, principal, models.StatusPublish); err != nil {
			log.Fatal("Failed to publish seeded article:", err)
		}
		log.Printf("✅ Created article: %s", title)
	}

	if *issueToken {
		verifier := auth.NewJWTVerifier(*secret)
		token, err := verifier.IssueToken(author.ID, 24*time.Hour)
		if err != nil {
			log.Fatal("Failed to issue token:", err)
		}
		log.Printf("🔑 Dev token for %s: %s", author.Username, token)
	}

	log.Printf("✅ Seeding complete")
}
