package static

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	router  *Router
	handler *Handler
}

// NewFeature creates the static content feature rooted at processDir/contentRoot.
func NewFeature(processDir, contentRoot string, logger *zap.Logger) *Feature {
	r := NewRouter(processDir, contentRoot)
	return &Feature{router: r, handler: NewHandler(r, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "static"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Router returns the feature's router.
func (f *Feature) Router() *Router {
	return f.router
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
