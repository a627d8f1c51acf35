package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/tuwebai/tuweb-backend/config"
	apihttp "github.com/tuwebai/tuweb-backend/internal/api/http"
	"github.com/tuwebai/tuweb-backend/internal/api/http/middleware"
	"github.com/tuwebai/tuweb-backend/internal/auth"
	authhttp "github.com/tuwebai/tuweb-backend/internal/auth/http"
	authmw "github.com/tuwebai/tuweb-backend/internal/auth/middleware"
	leadshttp "github.com/tuwebai/tuweb-backend/internal/leads/http"
	leadsrepo "github.com/tuwebai/tuweb-backend/internal/leads/repository"
	leadssvc "github.com/tuwebai/tuweb-backend/internal/leads/service"
	"github.com/tuwebai/tuweb-backend/internal/mailer"
	paymentshttp "github.com/tuwebai/tuweb-backend/internal/payments/http"
	projectshttp "github.com/tuwebai/tuweb-backend/internal/projects/http"
	projectsrepo "github.com/tuwebai/tuweb-backend/internal/projects/repository"
	testimonialshttp "github.com/tuwebai/tuweb-backend/internal/testimonials/http"
	testimonialsrepo "github.com/tuwebai/tuweb-backend/internal/testimonials/repository"
	ticketshttp "github.com/tuwebai/tuweb-backend/internal/tickets/http"
	ticketsrepo "github.com/tuwebai/tuweb-backend/internal/tickets/repository"
	usershttp "github.com/tuwebai/tuweb-backend/internal/users/http"
	usersrepo "github.com/tuwebai/tuweb-backend/internal/users/repository"
)

type Deps struct {
	Cfg       *config.Config
	DB        *pgxpool.Pool
	Firestore *firestore.Client
	Redis     *redis.Client
	Verifier  auth.TokenVerifier
	Payments  paymentshttp.Payments
	Mailer    mailer.Mailer
}

// Register wires every route group onto the engine.
func Register(r *gin.Engine, dep Deps) {
	health := apihttp.NewHealthHandler("tuweb-backend", dep.Cfg.App.Version, dep.DB, dep.Redis)
	health.RegisterRoutes(r)

	userRepo := usersrepo.NewUserRepository(dep.Firestore)
	projectRepo := projectsrepo.NewProjectRepository(dep.Firestore)
	ticketRepo := ticketsrepo.NewTicketRepository(dep.Firestore)
	testimonialRepo := testimonialsrepo.NewTestimonialRepository(dep.Firestore)

	// Public lead intake, rate-limited per client IP.
	leadsSvc := leadssvc.New(leadsrepo.NewLeadRepository(dep.DB), dep.Mailer, dep.Cfg.SMTP.NotifyTo)
	leadsGroup := r.Group("", middleware.RateLimit(1, 5))
	leadshttp.New(leadsSvc).Register(leadsGroup)

	testimonialHandler := testimonialshttp.New(testimonialRepo)
	testimonialHandler.RegisterPublic(r.Group("/api/testimonials"))

	paymentHandler := paymentshttp.New(dep.Payments, dep.Cfg.MercadoPago.WebhookSecret)
	paymentHandler.Register(r)

	authHandler := authhttp.New(userRepo,
		dep.Cfg.Google.ClientID, dep.Cfg.Google.ClientSecret, dep.Cfg.Google.RedirectURL,
		dep.Cfg.IsProduction())
	authHandler.Register(r.Group("/api/auth"))

	// Everything below requires a verified Firebase bearer token.
	strict := r.Group("/api", authmw.RequireAuth(dep.Verifier, userRepo))

	usersGroup := strict.Group("/users")
	usershttp.New(userRepo).Register(usersGroup)

	projectHandler := projectshttp.New(projectRepo)
	projectHandler.Register(strict.Group("/projects"))
	projectHandler.RegisterUserRoutes(usersGroup)

	ticketHandler := ticketshttp.New(ticketRepo)
	ticketHandler.Register(strict.Group("/tickets"))
	ticketHandler.RegisterUserRoutes(usersGroup)

	paymentHandler.RegisterUserRoutes(usersGroup)

	testimonialHandler.RegisterAdmin(strict.Group("/testimonials"))
}
