package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		SSLMode  string `yaml:"ssl_mode"`
	} `yaml:"database"`
}

type User struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
}

type Property struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

type SetupData struct {
	ConfigFile string     `yaml:"config_file"`
	Users      []User     `yaml:"users"`
	Properties []Property `yaml:"properties"`
}

func main() {
	// Read the setup YAML file
	setupFile := "tests/data-setup/seed.yaml"

	// Check if file exists, if not try relative path
	if _, err := os.Stat(setupFile); os.IsNotExist(err) {
		setupFile = "seed.yaml"
	}

	setupData, err := readSetupFile(setupFile)
	if err != nil {
		log.Fatalf("Failed to read setup file: %v", err)
	}

	// Read the config file
	configPath := resolveConfigPath(setupData.ConfigFile)
	config, err := readConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	// Connect to database
	db, err := connectDB(config)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Populate data
	if err := populateData(db, setupData); err != nil {
		log.Fatalf("Failed to populate data: %v", err)
	}

	log.Println("✅ Test data successfully populated!")
}

func readSetupFile(filename string) (*SetupData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var setupData SetupData
	if err := yaml.Unmarshal(data, &setupData); err != nil {
		return nil, err
	}

	return &setupData, nil
}

func resolveConfigPath(configPath string) string {
	// Try the path as-is first
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	// Try from project root
	projectRoot := findProjectRoot()
	fullPath := filepath.Join(projectRoot, configPath)
	if _, err := os.Stat(fullPath); err == nil {
		return fullPath
	}

	// Return original path and let it fail with a clear error
	return configPath
}

func findProjectRoot() string {
	// Look for go.mod to identify project root
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "."
}

func readConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func connectDB(config *Config) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Database.Host,
		config.Database.Port,
		config.Database.User,
		config.Database.Password,
		config.Database.Database,
		config.Database.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("✓ Connected to database: %s@%s:%d/%s",
		config.Database.User,
		config.Database.Host,
		config.Database.Port,
		config.Database.Database)

	return db, nil
}

func populateData(db *sql.DB, data *SetupData) error {
	// Start transaction
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var adminID uuid.UUID

	// 1. Create users
	for i, user := range data.Users {
		log.Printf("Creating user %d/%d: %s (%s)", i+1, len(data.Users), user.Name, user.Email)

		// Hash password
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", user.Email, err)
		}

		userID := uuid.New()
		_, err = tx.Exec(`
			INSERT INTO users (id, email, password_hash, name, role, created_on, updated_on)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			userID,
			user.Email,
			string(passwordHash),
			user.Name,
			user.Role,
			time.Now(),
			time.Now(),
		)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.Email, err)
		}

		if user.Role == "ADMIN" && adminID == uuid.Nil {
			adminID = userID
		}

		log.Printf("  ✓ User created with ID: %s, Role: %s", userID, user.Role)
	}

	if adminID == uuid.Nil {
		return fmt.Errorf("seed data must contain at least one ADMIN user")
	}

	// 2. Create properties owned by the first admin
	for i, property := range data.Properties {
		log.Printf("Creating property %d/%d: %s", i+1, len(data.Properties), property.Name)

		propertyID := uuid.New()
		_, err = tx.Exec(`
			INSERT INTO properties (id, name, address, created_by, created_on)
			VALUES ($1, $2, $3, $4, $5)
		`,
			propertyID,
			property.Name,
			property.Address,
			adminID,
			time.Now(),
		)
		if err != nil {
			return fmt.Errorf("failed to create property %s: %w", property.Name, err)
		}

		log.Printf("  ✓ Property created with ID: %s", propertyID)
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
