package platform

import (
	config "github.com/maheshrc27/autopost/configs"
	"github.com/maheshrc27/autopost/internal/models"
)

type Registry struct {
	publishers map[int64]Publisher
}

// NewRegistry wires a publisher for every known platform id. In stub mode
// no network calls are made.
func NewRegistry(cfg config.Platforms) *Registry {
	r := &Registry{publishers: make(map[int64]Publisher)}

	if cfg.Mode == "stub" {
		for id, name := range models.PlatformNames {
			r.publishers[id] = NewStub(name, id == models.PlatformInstagram)
		}
		return r
	}

	r.publishers[models.PlatformFacebook] = NewFacebook(cfg.FacebookURL)
	r.publishers[models.PlatformInstagram] = NewInstagram(cfg.FacebookURL)
	r.publishers[models.PlatformTikTok] = NewTikTok(cfg.TikTokURL)
	r.publishers[models.PlatformGoogleBusiness] = NewGoogleBusiness(cfg.GoogleBusinessURL)
	r.publishers[models.PlatformBlogger] = NewBlogger(cfg.BloggerURL)
	return r
}

// NewRegistryWith builds a registry from explicit publishers.
func NewRegistryWith(publishers map[int64]Publisher) *Registry {
	r := &Registry{publishers: make(map[int64]Publisher, len(publishers))}
	for id, p := range publishers {
		r.publishers[id] = p
	}
	return r
}

func (r *Registry) Get(platformID int64) (Publisher, bool) {
	p, ok := r.publishers[platformID]
	return p, ok
}
