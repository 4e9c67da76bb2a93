package fx

import (
	"phonebook/config"
	"phonebook/internal/domain/auth"
	"phonebook/internal/domain/contact"
	"phonebook/internal/middleware"
	"phonebook/internal/routes"

	"go.uber.org/fx"
)

var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
	),
)

func newHandler(
	cfg *config.Config,
	authSvc *auth.Service,
	contactSvc *contact.Service,
	jwtSvc *middleware.JwtService,
) *routes.Handler {
	handler := &routes.Handler{
		AuthService:    authSvc,
		ContactService: contactSvc,
		JwtService:     jwtSvc,
		UploadDir:      cfg.Avatar.TempDir,
	}
	if cfg.Avatar.Storage == config.StorageLocal {
		handler.AvatarDir = cfg.Avatar.Dir
	}
	return handler
}
