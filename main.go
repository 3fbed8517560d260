package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	paymentControllers "github.com/xsevenai/pos-api/controllers/payment"
	"github.com/xsevenai/pos-api/models"
	"github.com/xsevenai/pos-api/routes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartLineItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.QRFile{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Seed the default menu on first boot
	if err := models.SeedCatalog(db); err != nil {
		log.Fatalf("❌ Catalog seed failed: %v", err)
	}

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Generated QR codes are served statically
	qrUploadDir := os.Getenv("QR_UPLOAD_DIR")
	if qrUploadDir == "" {
		qrUploadDir = "./uploads/qrfiles"
	}
	r.Static("/qrfiles", qrUploadDir)

	publicBaseURL := os.Getenv("PUBLIC_BASE_URL")
	if publicBaseURL == "" {
		publicBaseURL = "http://localhost:8080"
	}

	// Wallet gateway: optional, wallet checkouts fail cleanly without it
	var wallet paymentControllers.Gateway
	walletClient, err := paymentControllers.NewWalletClientFromEnv()
	if err != nil {
		log.Printf("⚠️ Wallet gateway disabled: %v", err)
		wallet = paymentControllers.DisabledGateway{}
	} else {
		wallet = walletClient
	}

	// Setup routes
	routes.SetupRoutes(r, db, routes.Config{
		QRUploadDir:   qrUploadDir,
		PublicBaseURL: publicBaseURL,
		Wallet:        wallet,
	})

	// Purge expired guest sessions daily at 3 AM
	go startDailyGuestPurge(db, 3, 0)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// startDailyGuestPurge deletes guest users whose session expired, together
// with their carts, at a fixed hour every day.
func startDailyGuestPurge(db *gorm.DB, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		log.Printf("⏳ Next guest purge scheduled at: %s", next.Format("2006-01-02 15:04:05"))
		time.Sleep(next.Sub(now))

		if err := purgeExpiredGuests(db); err != nil {
			log.Printf("❌ Guest purge failed: %v", err)
		}
	}
}

func purgeExpiredGuests(db *gorm.DB) error {
	var guests []models.User
	if err := db.Preload("Cart").
		Where("role = ? AND expires_at < ?", "guest", time.Now()).
		Find(&guests).Error; err != nil {
		return err
	}

	for _, guest := range guests {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", guest.Cart.CartID).Delete(&models.CartLineItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("user_id = ?", guest.ID).Delete(&models.Cart{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.User{}, "id = ?", guest.ID).Error
		})
		if err != nil {
			log.Printf("❌ Failed to purge guest %s: %v", guest.ID, err)
			continue
		}
		log.Printf("🗑️ Purged expired guest: %s", guest.ID)
	}
	return nil
}
