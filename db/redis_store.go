package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"student-records-go/models"
)

const defaultStudentsKey = "students" // String: JSON array of all students

// RedisStore keeps the whole collection as one JSON value under a single key
type RedisStore struct {
	Client *redis.Client
	Key    string
}

// NewRedisStore creates a RedisStore. An empty key falls back to "students".
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultStudentsKey
	}
	return &RedisStore{
		Client: client,
		Key:    key,
	}
}

// LoadAll reads the collection. A missing key is an empty collection.
func (s *RedisStore) LoadAll(ctx context.Context) ([]models.Student, error) {
	data, err := s.Client.Get(ctx, s.Key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.Student{}, nil
		}
		log.Printf("Error loading students from redis key %s: %v", s.Key, err)
		return nil, &StorageError{Op: "load", Target: s.Key, Err: err}
	}

	var students []models.Student
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, &StorageError{Op: "load", Target: s.Key, Err: err}
	}
	if students == nil {
		students = []models.Student{}
	}
	return students, nil
}

// SaveAll overwrites the key with the given collection
func (s *RedisStore) SaveAll(ctx context.Context, students []models.Student) error {
	if students == nil {
		students = []models.Student{}
	}
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return &StorageError{Op: "save", Target: s.Key, Err: err}
	}
	if err := s.Client.Set(ctx, s.Key, data, 0).Err(); err != nil {
		log.Printf("Error saving students to redis key %s: %v", s.Key, err)
		return &StorageError{Op: "save", Target: s.Key, Err: err}
	}
	return nil
}

// RedisOptions configures InitializeRedisClient
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// InitializeRedisClient creates a Redis client and pings it
func InitializeRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", opts.Addr, err)
	}

	log.Printf("Successfully connected to Redis %s (db %d)", opts.Addr, opts.DB)
	return rdb, nil
}
