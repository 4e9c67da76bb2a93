package fx

import (
	"context"

	"phonebook/config"
	"phonebook/internal/avatar"
	"phonebook/internal/domain/auth"
	"phonebook/internal/domain/contact"
	"phonebook/internal/domain/user"
	"phonebook/internal/logger"
	"phonebook/internal/mail"
	"phonebook/internal/middleware"

	"go.uber.org/fx"
)

var DomainModule = fx.Module("domain",
	fx.Provide(
		user.NewService,
		contact.NewService,

		newHasher,
		newMailer,
		newAvatarStorage,
		newAuthService,
	),
)

func newHasher() auth.Hasher {
	return auth.NewBcryptHasher()
}

func newMailer(cfg *config.Config) mail.Mailer {
	if cfg.Mail.SendGridAPIKey == "" {
		logger.Warn().Msg("SENDGRID_API_KEY not set, verification emails will only be logged")
		return mail.LogMailer{}
	}
	return mail.NewSendGridMailer(cfg.Mail.SendGridAPIKey, cfg.Mail.From)
}

func newAvatarStorage(cfg *config.Config) (avatar.Storage, error) {
	if cfg.Avatar.Storage == config.StorageS3 {
		logger.Info().Str("bucket", cfg.S3.Bucket).Msg("avatar storage: s3")
		return avatar.NewS3Storage(context.Background(), avatar.S3Options{
			Bucket:        cfg.S3.Bucket,
			Region:        cfg.S3.Region,
			Endpoint:      cfg.S3.Endpoint,
			AccessKey:     cfg.S3.AccessKey,
			SecretKey:     cfg.S3.SecretKey,
			PublicBaseURL: cfg.S3.PublicBaseURL,
		})
	}
	logger.Info().Str("dir", cfg.Avatar.Dir).Msg("avatar storage: local")
	return avatar.NewLocalStorage(cfg.Avatar.Dir)
}

func newAuthService(
	cfg *config.Config,
	userSvc *user.Service,
	hasher auth.Hasher,
	jwtSvc *middleware.JwtService,
	mailer mail.Mailer,
	storage avatar.Storage,
) *auth.Service {
	return auth.NewService(userSvc, hasher, jwtSvc, mailer, storage, cfg.App.BaseURL)
}
