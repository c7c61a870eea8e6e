package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/folio-labs/portfolio-backend/api"
	"github.com/folio-labs/portfolio-backend/auth"
	"github.com/folio-labs/portfolio-backend/config"
	"github.com/folio-labs/portfolio-backend/database"
	"github.com/folio-labs/portfolio-backend/heartbeat"
	"github.com/folio-labs/portfolio-backend/models"
	"github.com/folio-labs/portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	// One external managed Postgres holds all persistent state
	connStr := config.GetString(c, "DATABASE_URL", "")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "postgres"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "portfolio"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "require"),
		)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Bound the shared connection pool
	sqlDB, err := db.DB()
	if err != nil {
		fmt.Printf("Error getting database handle: %v\n", err)
		os.Exit(1)
	}
	sqlDB.SetMaxOpenConns(config.GetInt(c, "DB_MAX_OPEN_CONNS", 10))
	sqlDB.SetMaxIdleConns(config.GetInt(c, "DB_MAX_IDLE_CONNS", 5))
	sqlDB.SetConnMaxLifetime(config.GetDuration(c, "DB_CONN_MAX_LIFETIME", 30*time.Minute))

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	if err := seedAdminUser(currentDB, c); err != nil {
		fmt.Printf("Error seeding admin user: %v\n", err)
		os.Exit(1)
	}

	// never closed: Start's goroutine may still send ErrServerClosed while
	// the process is shutting down
	errChannel := make(chan error)

	server, err := api.NewServer(currentDB)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	// Keep-alive heartbeat runs on its own schedule, independent of
	// request traffic. It can be switched off for local development
	// against a database nobody reclaims.
	if config.GetBool(c, "KEEP_ALIVE_ENABLED", true) {
		interval := clampInterval(config.GetDuration(c, "KEEP_ALIVE_INTERVAL", heartbeat.DefaultInterval))
		task := heartbeat.New(
			currentDB.KeepAliveRepo(),
			services.ResendMailer{},
			interval,
			config.GetString(c, "ALERT_EMAIL", ""),
		)
		if err := task.Start(); err != nil {
			fmt.Printf("Error starting heartbeat: %v\n", err)
			os.Exit(1)
		}
		defer task.Stop()
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// seedAdminUser creates the single admin account on first boot when the
// table is empty and credentials are provided. Day-to-day admin creation
// stays out-of-band.
func seedAdminUser(db database.Database, c map[string]string) error {
	email := config.GetString(c, "ADMIN_EMAIL", "")
	password := config.GetString(c, "ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	count, err := db.UserRepo().Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{Email: email, PasswordHash: hash}
	if err := db.UserRepo().Add(&user); err != nil {
		return err
	}

	fmt.Printf("Seeded admin user: %s\n", user.Email)
	return nil
}

// clampInterval keeps the heartbeat period inside the 24-48h band the
// inactivity policy calls for.
func clampInterval(interval time.Duration) time.Duration {
	const min, max = 24 * time.Hour, 48 * time.Hour
	if interval < min {
		return min
	}
	if interval > max {
		return max
	}
	return interval
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
