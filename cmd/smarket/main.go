package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"smarket/config"
	"smarket/internal/delivery"
	"smarket/internal/delivery/http"
	"smarket/internal/delivery/http/middleware"
	"smarket/internal/delivery/http/router/handler"
	"smarket/internal/infra/kafka"
	logs "smarket/internal/infra/log"
	"smarket/internal/infra/notify"
	"smarket/internal/infra/persistence/postgres"
	"smarket/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		notify.New,
		kafka.NewPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
			notify.NewNotificationRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewProductService,
			impl.NewCommentService,
			impl.NewOrderService,
			impl.NewUserService,
			impl.NewGroupService,
			impl.NewHelpAndHopeService,
			impl.NewDonationService,
			impl.NewRoleRequestService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProductHandler,
			handler.NewCommentHandler,
			handler.NewOrderHandler,
			handler.NewUserHandler,
			handler.NewGroupHandler,
			handler.NewDonationHandler,
			handler.NewRoleRequestHandler,
			handler.NewNotificationHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
