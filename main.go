package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"path"
	"strconv"

	"gateway/controllers"
	"gateway/utils"

	"github.com/go-michi/michi"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/handlers"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	connStr := os.Getenv("DATABASE_CONNECTION_STR")
	if connStr == "" {
		log.Fatal("DATABASE_CONNECTION_STR not set")
	}

	// Connect to the database
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.Fatal(utils.ErrorWithTrace(err, err.Error()))
	}
	defer db.Close()

	// Bound the pool. Checkout blocks when every connection is in use.
	db.SetMaxOpenConns(getEnvInt("POOL_MAX_CONNS", 10))
	db.SetMaxIdleConns(getEnvInt("POOL_MIN_CONNS", 2))

	uploadPath := getEnv("UPLOAD_DIR", "uploads")
	controllers.SetDB(db)
	controllers.SetJWTSecret([]byte(getEnv("JWT_SECRET", "dev-secret-change-me")))
	controllers.SetUploadConfig(getEnv("PUBLIC_BASE_URL", "http://localhost:8000"), uploadPath)

	// Handle migrations
	migRoot := os.Getenv("MIGRATIONS_ROOT")
	if migRoot == "" {
		migRoot = GetRootPath("database/migrations")
	}
	mig, err := migrate.New("file://"+migRoot, connStr)
	if err != nil {
		log.Fatal(utils.ErrorWithTrace(err, err.Error()))
	}
	if err := mig.Up(); err != nil {
		if !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal(utils.ErrorWithTrace(err, err.Error()))
		}
		log.Printf("migrations: %s", err.Error())
	}

	// One POST route per action name; the engine dispatches by action.
	r := michi.NewRouter()
	r.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadPath))))
	r.Route("/", func(sub *michi.Router) {
		sub.HandleFunc("POST ownerLogin", controllers.OwnerLogin)
		sub.HandleFunc("POST createVendor", controllers.CreateVendor)
		sub.HandleFunc("POST editVendor", controllers.EditVendor)
		sub.HandleFunc("POST deleteVendor", controllers.DeleteVendor)
		sub.HandleFunc("POST createStaff", controllers.CreateStaff)
		sub.HandleFunc("POST editStaff", controllers.EditStaff)
		sub.HandleFunc("POST createRider", controllers.CreateRider)
		sub.HandleFunc("POST editRider", controllers.EditRider)
		sub.HandleFunc("POST createCustomer", controllers.CreateCustomer)
		sub.HandleFunc("POST editCustomer", controllers.EditCustomer)
		sub.HandleFunc("POST createStore", controllers.CreateStore)
		sub.HandleFunc("POST editStore", controllers.EditStore)
		sub.HandleFunc("POST deleteStore", controllers.DeleteStore)
		sub.HandleFunc("POST restaurantByOwner", controllers.RestaurantByOwner)
		sub.HandleFunc("POST restaurantsPaginated", controllers.RestaurantsPaginated)
		sub.HandleFunc("POST uploadImageToS3", controllers.UploadImage)
	})

	// Enable CORS
	corsOptions := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := getEnv("PORT", "8000")
	log.Printf("Action gateway listening on :%s", port)
	if err := http.ListenAndServe(":"+port, corsOptions(r)); err != nil {
		log.Fatal(utils.ErrorWithTrace(err, err.Error()))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetRootPath(dir string) string {
	ex, err := os.Executable()
	if err != nil {
		log.Fatal(utils.ErrorWithTrace(err, err.Error()))
	}
	return path.Join(path.Dir(ex), dir)
}
