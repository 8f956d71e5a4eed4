package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/niteshkumar/dealdesk-api/internal/application/service"
	"github.com/niteshkumar/dealdesk-api/internal/config"
	"github.com/niteshkumar/dealdesk-api/internal/infrastructure/database"
	"github.com/niteshkumar/dealdesk-api/internal/infrastructure/repository"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/handler"
	"github.com/niteshkumar/dealdesk-api/internal/presentation/http/routes"
	"github.com/niteshkumar/dealdesk-api/pkg/email"
	"github.com/niteshkumar/dealdesk-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	planRepo := repository.NewPricingPlanRepository(db)
	scopeRepo := repository.NewScopeOfWorkRepository(db)
	scopeItemRepo := repository.NewScopeItemRepository(db)
	invoiceRepo := repository.NewProformaInvoiceRepository(db)
	agreementRepo := repository.NewAgreementRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	kickoffRepo := repository.NewKickoffRequestRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	consultantRepo := repository.NewConsultantRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.Email.FrontendURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	leadService := service.NewLeadService(leadRepo)
	pricingService := service.NewPricingService(planRepo, leadRepo, scopeRepo)
	scopeService := service.NewScopeService(scopeRepo, scopeItemRepo, planRepo)
	proformaService := service.NewProformaService(invoiceRepo, planRepo)
	agreementService := service.NewAgreementService(agreementRepo, milestoneRepo, invoiceRepo, leadRepo, emailService)
	paymentService := service.NewPaymentService(paymentRepo, agreementRepo)
	kickoffService := service.NewKickoffService(kickoffRepo, projectRepo, agreementRepo, consultantRepo, leadRepo, emailService)
	pipelineService := service.NewPipelineService(leadRepo, planRepo, scopeRepo, invoiceRepo, agreementRepo)
	documentService := service.NewDocumentService(invoiceRepo, agreementRepo, leadRepo)

	// Initialize handlers
	h := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Lead:      handler.NewLeadHandler(leadService, pipelineService, kickoffService),
		Pricing:   handler.NewPricingHandler(pricingService),
		Scope:     handler.NewScopeHandler(scopeService),
		Proforma:  handler.NewProformaHandler(proformaService, documentService),
		Agreement: handler.NewAgreementHandler(agreementService, documentService),
		Payment:   handler.NewPaymentHandler(paymentService),
		Kickoff:   handler.NewKickoffHandler(kickoffService),
	}

	// Setup routes
	router := routes.Setup(h, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Start server
	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s (env: %s)", cfg.App.Name, port, cfg.App.Env)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
