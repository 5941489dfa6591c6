package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mateusmacedo/go-crm/internal/customer"
	"github.com/mateusmacedo/go-crm/internal/customer/application"
	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	"github.com/mateusmacedo/go-crm/internal/customer/infrastructure"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-crm/pkg/infrastructure"
	redisAdapter "github.com/mateusmacedo/go-crm/pkg/infrastructure/redis/adapter"
	watermillLogAdapter "github.com/mateusmacedo/go-crm/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-crm/pkg/infrastructure/zaplogger/adapter"
)

// Variante com as notificações de commit trafegando por Redis Streams: a
// sincronização do read model pode ser consumida por outro processo e conta
// com a reentrega do grupo de consumidores.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	infrastructure.RegisterProjections()

	wmLogger := watermillLogAdapter.NewWatermillLoggerAdapter(appLogger)

	redisClient := redisAdapter.NewRedisClient("localhost:6379")
	defer redisClient.Close()

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: redisClient,
	}, wmLogger)
	if err != nil {
		appLogger.Error(ctx, "failed to create publisher", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}
	defer publisher.Close()

	subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        redisClient,
		ConsumerGroup: "customer_projection",
		Consumer:      "customer_projection_1",
	}, wmLogger)
	if err != nil {
		appLogger.Error(ctx, "failed to create subscriber", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}
	defer subscriber.Close()

	idGenerator := func() string {
		return uuid.New().String()
	}

	commandBus := pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.RegisterCustomerData], application.RegisterCustomerData]()
	queryBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.FindCustomerData], application.FindCustomerData, []domain.CustomerDocument]()
	eventBus := redisAdapter.NewRedisEventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered](publisher, subscriber, appLogger)

	dsn := "host=localhost user=myuser password=mypassword dbname=mydb port=5432 sslmode=disable TimeZone=UTC"

	uowFactory, err := infrastructure.NewGormUnitOfWorkFactory(dsn, eventBus, appLogger)
	if err != nil {
		appLogger.Error(ctx, "failed to initialize the unit of work factory", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}

	readModel, err := infrastructure.NewRedisCustomerReadModel(redisClient, appLogger)
	if err != nil {
		panic(err)
	}

	customerSlice := customer.NewCustomerSlice(
		commandBus,
		queryBus,
		idGenerator,
		appLogger,
		eventBus,
		uowFactory,
		readModel,
	)

	router := chi.NewRouter()
	customerSlice.RegisterRoutes(router)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info(ctx, "signal received", map[string]interface{}{"signal": sig})
		cancel()
	}()

	serverAddress := ":8080"
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	go func() {
		appLogger.Info(ctx, "server starting on "+serverAddress, nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error(ctx, "failed to start the server", map[string]interface{}{
				"error": err,
			})
		}
	}()

	<-ctx.Done()
	appLogger.Info(ctx, "shutting down the server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(context.Background(), "failed to shut down the server", map[string]interface{}{
			"error": err,
		})
	}

	appLogger.Info(context.Background(), "server stopped", nil)
}
