package provider

import (
	"github.com/aevi-next/internal/cache"
	"github.com/aevi-next/internal/config"
	"github.com/aevi-next/internal/logger"
	"github.com/aevi-next/internal/models"
	"github.com/aevi-next/internal/queue"
	"github.com/aevi-next/internal/repository"
	"github.com/aevi-next/internal/service"
)

// Container wires the repositories and services once and hands them to
// handlers and workers.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo    repository.ProductRepository
	CartRepo       repository.CartRepository
	UserRepo       repository.UserRepository
	WishlistRepo   repository.WishlistRepository
	LeadRepo       repository.LeadRepository
	NewsletterRepo repository.NewsletterRepository

	// Services
	CatalogService      *service.CatalogService
	CartService         *service.CartService
	WishlistService     *service.WishlistService
	AccountService      *service.AccountService
	IntakeService       *service.IntakeService
	EmailService        *service.EmailService
	NotificationService *service.NotificationService
}

// NewContainer initializes the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.LeadRepo = repository.NewLeadRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.NotificationService = service.NewNotificationService(c.EmailService, c.QueueClient)

	c.CatalogService = service.NewCatalogService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.AccountService = service.NewAccountService(c.Config, c.UserRepo, c.NotificationService)
	c.IntakeService = service.NewIntakeService(c.LeadRepo, c.NewsletterRepo, c.UserRepo, c.NotificationService)
}

// Close releases external connections.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
