package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mateusmacedo/go-crm/internal/customer"
	"github.com/mateusmacedo/go-crm/internal/customer/application"
	"github.com/mateusmacedo/go-crm/internal/customer/domain"
	"github.com/mateusmacedo/go-crm/internal/customer/infrastructure"
	pkgDomain "github.com/mateusmacedo/go-crm/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-crm/pkg/infrastructure"
	kafkaAdapter "github.com/mateusmacedo/go-crm/pkg/infrastructure/kafka/adapter"
	watermillLogAdapter "github.com/mateusmacedo/go-crm/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-crm/pkg/infrastructure/zaplogger/adapter"
)

// Variante de demonstração com as notificações de commit trafegando por
// Kafka, usando o armazenamento autoritativo e o read store em memória.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger, err := zapAdapter.NewZapAppLogger()
	if err != nil {
		panic(err)
	}

	infrastructure.RegisterProjections()

	wmLogger := watermillLogAdapter.NewWatermillLoggerAdapter(appLogger)
	marshaler := kafka.DefaultMarshaler{}

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   []string{"localhost:9092"},
		Marshaler: marshaler,
	}, wmLogger)
	if err != nil {
		appLogger.Error(ctx, "failed to create publisher", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}
	defer publisher.Close()

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.ClientID = "go-crm"

	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               []string{"localhost:9092"},
		Unmarshaler:           marshaler,
		ConsumerGroup:         "customer_projection",
		OverwriteSaramaConfig: saramaConfig,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}, wmLogger)
	if err != nil {
		appLogger.Error(ctx, "failed to create subscriber", map[string]interface{}{
			"error": err,
		})
		panic(err)
	}
	defer subscriber.Close()

	// Inicializa o tópico de eventos se ainda não existir
	if err := subscriber.SubscribeInitialize("CustomerRegistered"); err != nil {
		appLogger.Error(ctx, "failed to initialize topic", map[string]interface{}{
			"topic": "CustomerRegistered",
			"error": err,
		})
		panic(err)
	}

	idGenerator := func() string {
		return uuid.New().String()
	}

	commandBus := pkgInfra.NewSimpleCommandBus[pkgDomain.Command[application.RegisterCustomerData], application.RegisterCustomerData]()
	queryBus := pkgInfra.NewSimpleQueryBus[pkgDomain.Query[application.FindCustomerData], application.FindCustomerData, []domain.CustomerDocument]()
	eventBus := kafkaAdapter.NewKafkaEventBus[pkgDomain.Event[domain.CustomerRegistered], domain.CustomerRegistered](publisher, subscriber, appLogger)

	// Armazenamento autoritativo e read store em memória para demonstração
	store := infrastructure.NewMemoryCustomerStore(eventBus, appLogger)
	readModel := infrastructure.NewMemoryCustomerReadModel()

	customerSlice := customer.NewCustomerSlice(
		commandBus,
		queryBus,
		idGenerator,
		appLogger,
		eventBus,
		store,
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
