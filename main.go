package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"student-records-go/config"
	"student-records-go/db"
	"student-records-go/handlers"
	"student-records-go/models"
)

func main() {
	app := &cli.App{
		Name:  "student-records",
		Usage: "HTTP service for student records backed by a JSON file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "path to YAML config file"},
			&cli.IntFlag{Name: "port", Usage: "listen port (overrides config)"},
			&cli.StringFlag{Name: "data", Usage: "path to the students JSON file (overrides config)"},
			&cli.StringFlag{Name: "store", Usage: "storage backend: file or redis (overrides config)"},
			&cli.StringFlag{Name: "redis-addr", Usage: "redis address (overrides config)"},
			&cli.BoolFlag{Name: "seed", Usage: "write sample students when the store is empty"},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	cfg := config.Load(c.String("config"))
	if c.IsSet("port") {
		cfg.Port = c.Int("port")
	}
	if c.IsSet("data") {
		cfg.DataFile = c.String("data")
	}
	if c.IsSet("store") {
		cfg.Store = c.String("store")
	}
	if c.IsSet("redis-addr") {
		cfg.Redis.Addr = c.String("redis-addr")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Bool("seed")
	}

	gin.SetMode(cfg.GinMode)

	store, err := openStore(c.Context, cfg)
	if err != nil {
		return err
	}

	if cfg.Seed {
		checkAndSeedData(c.Context, store)
	}

	router := handlers.NewRouter(handlers.NewAPIHandler(store))

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("Server running on http://localhost%s (store: %s)", addr, cfg.Store)
	if err := router.Run(addr); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (db.Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		return db.NewFileStore(cfg.DataFile), nil
	case config.StoreRedis:
		client, err := db.InitializeRedisClient(ctx, db.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return db.NewRedisStore(client, cfg.Redis.Key), nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// checkAndSeedData writes sample students when the store is empty or its
// backing file does not exist yet
func checkAndSeedData(ctx context.Context, store db.Store) {
	students, err := store.LoadAll(ctx)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: could not check for existing students: %v. Skipping seed data.", err)
		return
	}
	if len(students) > 0 {
		log.Printf("Found %d existing students. Skipping seed data.", len(students))
		return
	}

	log.Println("No students found. Adding seed data...")
	if err := store.SaveAll(ctx, seedStudents()); err != nil {
		log.Printf("Error adding seed data: %v", err)
		return
	}
	log.Println("Seed data added.")
}

func seedStudents() []models.Student {
	return []models.Student{
		{ID: 1, Name: "Alice", Age: []byte("20"), Course: "CS"},
		{ID: 2, Name: "Bob", Age: []byte("22"), Course: "Math"},
		{ID: 3, Name: "Charlie", Course: "Physics"},
	}
}
