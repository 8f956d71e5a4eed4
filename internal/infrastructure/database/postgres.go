package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/niteshkumar/dealdesk-api/internal/config"
	"github.com/niteshkumar/dealdesk-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Directory entities
		&entity.Lead{},
		&entity.Consultant{},

		// Pipeline entities
		&entity.PricingPlan{},
		&entity.TeamRow{},
		&entity.ScopeItem{},
		&entity.ScopeOfWork{},
		&entity.ScopeSelection{},
		&entity.ProformaInvoice{},
		&entity.Agreement{},
		&entity.Milestone{},
		&entity.Payment{},
		&entity.KickoffRequest{},
		&entity.Project{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions,
// scope item catalog, consultant directory, admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "manage-leads", GuardName: "web"},
		{Name: "manage-pricing", GuardName: "web"},
		{Name: "manage-scopes", GuardName: "web"},
		{Name: "manage-proformas", GuardName: "web"},
		{Name: "manage-agreements", GuardName: "web"},
		{Name: "manage-payments", GuardName: "web"},
		{Name: "manage-kickoffs", GuardName: "web"},
		{Name: "review-kickoffs", GuardName: "web"},
		{Name: "view-projects", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	permsByName := func(names []string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	// Admin role gets everything
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:        "admin",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Printf("Warning: failed to create admin role: %v", err)
		}
	}

	// Sales role drives the pipeline up to and including the kickoff request
	salesPermissions := []string{
		"manage-leads",
		"manage-pricing",
		"manage-scopes",
		"manage-proformas",
		"manage-agreements",
		"manage-payments",
		"manage-kickoffs",
		"view-projects",
	}
	var salesRole entity.Role
	if err := db.Where("name = ?", "sales").First(&salesRole).Error; err != nil {
		salesRole = entity.Role{
			Name:        "sales",
			GuardName:   "web",
			Permissions: permsByName(salesPermissions),
		}
		if err := db.Create(&salesRole).Error; err != nil {
			log.Printf("Warning: failed to create sales role: %v", err)
		}
	}

	// Delivery role reviews kickoffs on the receiving side of the handoff
	deliveryPermissions := []string{
		"manage-leads",
		"review-kickoffs",
		"view-projects",
	}
	var deliveryRole entity.Role
	if err := db.Where("name = ?", "delivery").First(&deliveryRole).Error; err != nil {
		deliveryRole = entity.Role{
			Name:        "delivery",
			GuardName:   "web",
			Permissions: permsByName(deliveryPermissions),
		}
		if err := db.Create(&deliveryRole).Error; err != nil {
			log.Printf("Warning: failed to create delivery role: %v", err)
		}
	}

	seedScopeItems(db)
	seedConsultants(db)

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var role entity.Role
				if err := db.Where("name = ?", "admin").First(&role).Error; err == nil {
					if adminName == "" {
						adminName = "Admin"
					}
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{role},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create admin user: %v", err)
					} else {
						log.Printf("Admin user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

// seedScopeItems loads the master deliverable catalog. Items are matched by
// name so re-running the seed never duplicates them.
func seedScopeItems(db *gorm.DB) {
	items := []entity.ScopeItem{
		{Name: "Discovery workshop", Category: "Discovery", Description: "Stakeholder interviews and current-state assessment"},
		{Name: "Process mapping", Category: "Discovery", Description: "As-is and to-be process documentation"},
		{Name: "KPI framework", Category: "Strategy", Description: "Definition of success metrics and reporting cadence"},
		{Name: "Growth roadmap", Category: "Strategy", Description: "Quarterly growth plan with owners and milestones"},
		{Name: "Hiring support", Category: "Operations", Description: "Role definitions, screening and interview support"},
		{Name: "SOP documentation", Category: "Operations", Description: "Standard operating procedures for core functions"},
		{Name: "Financial review", Category: "Finance", Description: "Monthly review of P&L, cash flow and unit economics"},
		{Name: "Fundraise preparation", Category: "Finance", Description: "Deck, data room and investor outreach support"},
		{Name: "Leadership coaching", Category: "People", Description: "One-on-one coaching sessions for founders"},
		{Name: "Team training", Category: "People", Description: "Workshops for functional teams"},
	}

	for i := range items {
		var existing entity.ScopeItem
		if err := db.Where("name = ?", items[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&items[i]).Error; err != nil {
				log.Printf("Warning: failed to create scope item %s: %v", items[i].Name, err)
			}
		}
	}
}

// seedConsultants loads the employee directory used for PM assignment.
func seedConsultants(db *gorm.DB) {
	consultants := []entity.Consultant{
		{Name: "Asha Pillai", Email: "asha.pillai@dealdesk.local", Role: "project-manager"},
		{Name: "Rohit Menon", Email: "rohit.menon@dealdesk.local", Role: "project-manager"},
		{Name: "Divya Sharma", Email: "divya.sharma@dealdesk.local", Role: "delivery-lead"},
		{Name: "Karan Bhat", Email: "karan.bhat@dealdesk.local", Role: "consultant"},
	}

	for i := range consultants {
		var existing entity.Consultant
		if err := db.Where("email = ?", consultants[i].Email).First(&existing).Error; err != nil {
			consultants[i].IsActive = true
			if err := db.Create(&consultants[i]).Error; err != nil {
				log.Printf("Warning: failed to create consultant %s: %v", consultants[i].Email, err)
			}
		}
	}
}
