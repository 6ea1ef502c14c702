package bootstrap

import (
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/homepro-hq/marketplace-backend/internal/api/http"
	"github.com/homepro-hq/marketplace-backend/internal/api/http/middleware"
	"github.com/homepro-hq/marketplace-backend/internal/auth"
	cathttp "github.com/homepro-hq/marketplace-backend/internal/categories/http"
	catservice "github.com/homepro-hq/marketplace-backend/internal/categories/service"
	intakehttp "github.com/homepro-hq/marketplace-backend/internal/intake/http"
	intakerepo "github.com/homepro-hq/marketplace-backend/internal/intake/repository"
	intakeservice "github.com/homepro-hq/marketplace-backend/internal/intake/service"
	"github.com/homepro-hq/marketplace-backend/internal/projects"
	"github.com/homepro-hq/marketplace-backend/internal/uploads"
	"github.com/homepro-hq/marketplace-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Version     string

	DB         *pgxpool.Pool
	Redis      *redis.Client
	AuthClient *fbauth.Client // nil → header identity (dev/tests)

	Categories *catservice.Resolver
	Files      *uploads.Client
	Creator    *projects.Client

	DraftTTL time.Duration
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestID())

	var userRepo *users.Repo
	if dep.DB != nil {
		userRepo = users.NewRepo(dep.DB)
	}
	api.Use(auth.WithSession(dep.AuthClient, userRepo))

	cathttp.Register(api.Group("/categories"), dep.Categories)

	draftRepo := intakerepo.NewDraftRepository(dep.Redis, dep.DraftTTL)

	var journal intakeservice.SubmissionJournal
	if dep.DB != nil {
		journal = intakerepo.NewSubmissionRepository(dep.DB)
	}

	orch := intakeservice.NewOrchestrator(draftRepo, dep.Categories, dep.Creator, journal)
	uploader := uploads.NewAdapter(dep.Files)

	intakeHandler := intakehttp.New(draftRepo, uploader, orch)
	intakeHandler.Register(api.Group("/intake/drafts"))

	return r
}
