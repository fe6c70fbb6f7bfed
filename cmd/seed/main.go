package main

import (
	"log"
	"os"

	"dms-backend/internal/model"
	"dms-backend/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding users...")
	admin := seedUser(db, "admin", "admin@dms.local", "admin12345", "System Administrator", "ADMIN", "IT")
	finance := seedUser(db, "finance.officer", "finance@dms.local", "finance12345", "Finance Officer", "USER", "Finance")
	seedUser(db, "hr.officer", "hr@dms.local", "hr12345", "HR Officer", "USER", "HR")

	color.Cyan("Seeding documents...")
	seedDocument(db, finance, "invoice-2026-001.pdf", "Invoice January.pdf", "INVOICE", "Finance",
		"Vendor invoice for January hardware purchase", "invoice,hardware",
		"Invoice for the supply of networking hardware, total amount due within 30 days.")
	seedDocument(db, finance, "contract-vendor-nw.pdf", "Network Vendor Contract.pdf", "CONTRACT", "Finance",
		"Signed vendor contract for network maintenance", "contract,vendor",
		"This contract covers maintenance of the corporate network for the 2026 fiscal year.")
	seedDocument(db, admin, "policy-security.pdf", "Security Policy.pdf", "POLICY", "IT",
		"Company-wide information security policy", "policy,security",
		"All employees must follow the password and data handling rules described in this policy.")

	color.Cyan("Seeding smart folders...")
	seedSmartFolder(db, finance, "Finance Contracts",
		"All contracts visible to the finance department",
		`{"query": "contract", "documentTypes": ["CONTRACT"], "departments": ["Finance"]}`,
		"DEPARTMENT")
	seedSmartFolder(db, admin, "Active Policies",
		"Active policy documents across the company",
		`{"documentTypes": ["POLICY"], "isActive": true}`,
		"SHARED")

	color.Green("Seed completed.")
}

func seedUser(db *gorm.DB, username, email, password, fullName, role, department string) *model.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: failed to hash password for %s: %v", username, err)
	}

	user := model.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		Department:   department,
		IsActive:     true,
	}

	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoNothing: true,
	}).Create(&user).Error
	if err != nil {
		log.Fatalf("Error: failed to seed user %s: %v", username, err)
	}

	// Fetch the row back: OnConflict DoNothing keeps the existing id.
	var saved model.User
	if err := db.Where("username = ?", username).First(&saved).Error; err != nil {
		log.Fatalf("Error: failed to load seeded user %s: %v", username, err)
	}
	return &saved
}

func seedDocument(db *gorm.DB, uploader *model.User, fileName, originalName, docType, department, description, tags, extractedText string) {
	doc := model.Document{
		Id:                 uuid.New(),
		FileName:           fileName,
		OriginalName:       originalName,
		FilePath:           "/uploads/" + fileName,
		MimeType:           "application/pdf",
		FileSize:           1024,
		DocumentType:       docType,
		Department:         department,
		Description:        description,
		Tags:               tags,
		ExtractedText:      extractedText,
		UploadedById:       uploader.Id,
		UploadedByUsername: uploader.Username,
		IsActive:           true,
	}

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&doc).Error
	if err != nil {
		log.Printf("Warn: failed to seed document %s: %v", fileName, err)
	}
}

func seedSmartFolder(db *gorm.DB, owner *model.User, name, description, definition, scope string) {
	folder := model.SmartFolder{
		Id:          uuid.New(),
		Name:        name,
		Description: description,
		Definition:  datatypes.JSON([]byte(definition)),
		Scope:       scope,
		OwnerId:     owner.Id,
		IsActive:    true,
	}

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&folder).Error
	if err != nil {
		log.Printf("Warn: failed to seed smart folder %s: %v", name, err)
	}
}
