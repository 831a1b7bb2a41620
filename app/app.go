package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/cs23b1093/gigflow/internal/clock"
	"github.com/cs23b1093/gigflow/internal/controller"
	"github.com/cs23b1093/gigflow/internal/notify"
	"github.com/cs23b1093/gigflow/internal/repo"
	"github.com/cs23b1093/gigflow/internal/service"
	"github.com/cs23b1093/gigflow/pkg/http_server"
	"github.com/cs23b1093/gigflow/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/labstack/echo"
)

const defaultServerAddress = ":8080"

func runMigrations(postgresDB *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		log.Fatal(err)
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		log.Fatal(err)
	}

	if err := migrations.Up(); err != nil {
		if err == migrate.ErrNoChange {
			log.Println("no change made by migration scripts")
		} else {
			log.Fatal(err)
		}
	}
}

func Run() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	serverAddress := os.Getenv("SERVER_ADDRESS")
	if serverAddress == "" {
		serverAddress = defaultServerAddress
	}

	dbConn := os.Getenv("POSTGRES_CONN")
	if dbConn == "" {
		log.Fatal("POSTGRES_CONN is required")
	}
	databaseName := os.Getenv("POSTGRES_DATABASE")

	log.Println("Connecting database...")
	postgresDB, err := postgres.NewDB(dbConn)
	if err != nil {
		log.Fatal("Error occurred while connecting to db: ", err)
	}
	defer postgresDB.Close()

	if err := postgresDB.Database.Ping(); err != nil {
		log.Fatal("Database is not reachable: ", err)
	}

	log.Println("Running migrations...")
	runMigrations(postgresDB, databaseName)

	hub := notify.NewHub()
	dispatcher := notify.NewHubDispatcher(hub)

	repositories := repo.NewRepositories(postgresDB)
	services := service.NewServices(repositories, dispatcher, clock.NewSystem())
	handler := echo.New()

	log.Println("Setup routes...")
	controller.SetupRoutesHandlers(handler, services, hub)

	log.Println("Starting server...")
	httpServer := http_server.New(handler, serverAddress)

	log.Println("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Println("Got signal: " + s.String())
	case err = <-httpServer.Notify():
		log.Println("Server error: ", err)
	}

	log.Println("Shutting down...")
	err = httpServer.Shutdown()
	if err != nil {
		log.Println("Shutdown error: ", err)
	} else {
		log.Println("Successful shutdown")
	}
}
