package fx

import "go.uber.org/fx"

// AppModule wires the whole HTTP application.
var AppModule = fx.Options(
	ConfigModule,
	InfrastructureModule,
	DomainModule,
	MiddlewareModule,
	RoutesModule,
	ServerModule,
)
