package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/KMastroluca/mvscanner/internal/db"
	"github.com/KMastroluca/mvscanner/internal/facility/gormstore"
	"github.com/KMastroluca/mvscanner/internal/locations"
	"github.com/KMastroluca/mvscanner/internal/middleware"
	"github.com/KMastroluca/mvscanner/internal/residents"
	"github.com/KMastroluca/mvscanner/internal/timestamps"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	store := gormstore.New(db.Connect())
	if err := store.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "Migration failed:", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/api/residents", residents.SetupRoutes(store))
	r.Mount("/api/locations", locations.SetupRoutes(store))
	r.Mount("/api/timestamps", timestamps.SetupRoutes(store))

	fmt.Println("Server listening on port :" + port + "...")

	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, r))
}
