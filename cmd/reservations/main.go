package main

import (
	"context"

	bookingevents "reservations/internal/bookings/events"
	bookingshandler "reservations/internal/bookings/handler"
	"reservations/internal/bookings/repository"
	bookingsservice "reservations/internal/bookings/service"
	bookingsvalidator "reservations/internal/bookings/validator"
	contacthandler "reservations/internal/contact/handler"
	contactservice "reservations/internal/contact/service"
	contactvalidator "reservations/internal/contact/validator"
	"reservations/pkg/app"
	"reservations/pkg/config"
	"reservations/pkg/kafka"
	kafka_middleware "reservations/pkg/kafka/middleware"
	"reservations/pkg/mailer"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}

	cfg.LogConfiguration()

	cfg.Log.Info("Starting Reservations service")

	serverApp := app.NewApplication(cfg)

	sender, err := mailer.New(context.Background(), cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize mail transport", "transport", cfg.MailTransport, "error", err)
	}
	cfg.Log.Info("Mail transport initialized", "transport", cfg.MailTransport)

	publisher := initPublisher(cfg, serverApp)
	bookingRepo := initRepository(cfg)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		sender,
		publisher,
		cfg,
	)
	contactService := contactservice.NewContactService(
		contactvalidator.NewContactValidator(cfg.Log),
		sender,
		publisher,
		cfg,
	)

	serverApp.SetApp(
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		contacthandler.NewContactHandler(contactService, cfg.Log),
	)
	serverApp.Run()
}

func initRepository(cfg *config.Config) repository.BookingRepository {
	if cfg.StoreBackend == config.StoreBackendMongo {
		cfg.SetMongo()
		repo := repository.NewMongoBookingRepository(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
		defer cancel()
		count, err := repo.Count(ctx)
		if err != nil {
			cfg.Log.Fatal("Failed to read booking store", "backend", cfg.StoreBackend, "error", err)
		}
		cfg.Log.Info("Booking store initialized", "backend", cfg.StoreBackend, "database", cfg.MongoDatabaseName, "bookings", count)
		return repo
	}

	cfg.Log.Info("Booking store initialized", "backend", cfg.StoreBackend)
	return repository.NewMemoryBookingRepository()
}

func initPublisher(cfg *config.Config, serverApp *app.Application) bookingevents.Publisher {
	if !cfg.Kafka.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, lifecycle events disabled")
		return bookingevents.NopPublisher{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	serverApp.OnShutdown("kafka-producer", producer.Close)

	cfg.Log.Info("Kafka producer initialized", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	return bookingevents.NewKafkaPublisher(producer)
}
