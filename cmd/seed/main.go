package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/KMastroluca/mvscanner/internal/db"
	"github.com/KMastroluca/mvscanner/internal/facility/gormstore"
	"github.com/KMastroluca/mvscanner/internal/seeds"
)

func main() {
	testData := flag.Bool("test-data", false, "also seed test residents and scan events")
	flag.Parse()

	_ = godotenv.Load(".env.local")

	store := gormstore.New(db.Connect())
	if err := store.Init(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := seeds.SeedLocations(store); err != nil {
		log.Fatalf("Seeding locations failed: %v", err)
	}
	log.Println("Seeded facility locations")

	if *testData {
		if err := seeds.SeedTestData(store); err != nil {
			log.Fatalf("Seeding test data failed: %v", err)
		}
		log.Println("Seeded test residents and scan events")
	}
}
