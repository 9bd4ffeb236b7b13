package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	UserUC      domain.UserUsecase
	CompanyUC   domain.CompanyUsecase
	JobUC       domain.JobUsecase
	AuthUC      domain.AuthUsecase
	HealthUC    usecase.HealthUsecase
	Authorizer  domain.Authorizer
	Schemas     *validation.Registry
	RateLimiter *middleware.RateLimiter
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))

	r.GET("/health", healthHandler(deps.HealthUC))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if !cfg.S3Enabled() {
		r.Static(storage.PublicPrefix, cfg.UploadDir)
	}

	uploadLimit := deps.RateLimiter.Middleware(middleware.UploadRateLimitConfig(cfg.RateLimitUploadThreshold, window, deps.Authorizer))
	NewUserHandler(r, deps.UserUC, deps.Schemas, cfg.MaxPhotoBytes, uploadLimit)
	NewCompanyHandler(r, deps.CompanyUC, deps.Schemas)
	NewJobHandler(r, deps.JobUC, deps.UserUC, deps.Schemas)

	login := r.Group("")
	login.Use(deps.RateLimiter.Middleware(middleware.LoginRateLimitConfig(cfg.RateLimitLoginThreshold, window)))
	NewAuthHandler(login, deps.AuthUC, deps.Schemas)

	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Not Found", "The requested resource does not exist."))
	})

	return r
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func healthHandler(healthUC usecase.HealthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, healthy := healthUC.Check(c.Request.Context())
		if !healthy {
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
