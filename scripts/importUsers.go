package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"forma/config"
	"forma/database"
	"forma/models"

	"golang.org/x/crypto/bcrypt"
)

// Bulk-imports staff accounts from Users.csv. Expected columns:
// first_name,last_name,email,phone,department,role
// Imported accounts are created approved with the password from
// IMPORT_DEFAULT_PASSWORD (falls back to "changeme123").

func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("Users.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	defaultPassword := os.Getenv("IMPORT_DEFAULT_PASSWORD")
	if defaultPassword == "" {
		defaultPassword = "changeme123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash default password: %v", err)
	}

	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		user := models.User{
			FirstName:  getField(row, headerIndex, "first_name"),
			LastName:   getField(row, headerIndex, "last_name"),
			Email:      strings.ToLower(getField(row, headerIndex, "email")),
			Phone:      getField(row, headerIndex, "phone"),
			Department: getField(row, headerIndex, "department"),
			Role:       getField(row, headerIndex, "role"),
			Password:   string(hashed),
			IsActive:   true,
			IsApproved: true,
		}

		if user.Email == "" || !models.IsValidRole(user.Role) {
			log.Printf("Row %d skipped: missing email or invalid role %q", i+2, user.Role)
			skipped++
			continue
		}

		var existing models.User
		if err := database.Database.Db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		if err := database.Database.Db.Create(&user).Error; err != nil {
			log.Printf("Error inserting user %s: %v", user.Email, err)
			continue
		}
		inserted++
	}

	log.Printf("Import complete: %d inserted, %d skipped", inserted, skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
