package main

import (
	"insightery/internal/availability/handler"
	"insightery/internal/availability/repository"
	"insightery/internal/availability/service"
	"insightery/internal/availability/validator"
	"insightery/pkg/app"
	"insightery/pkg/config"
	"insightery/pkg/kafka"
	kafka_config "insightery/pkg/kafka/config"
)

const ServiceName = "availability"

// @title Insightery Availability API
// @version 1.0
// @description API documentation for the insighter availability microservice.
// @BasePath /
func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Availability service")
	availabilityService, producer := initServices(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewAvailabilityHandler(availabilityService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.AvailabilityService, *kafka.Producer) {
	availabilityValidator := validator.NewAvailabilityValidator(cfg.Log)
	availabilityRepo := repository.NewMongoAvailabilityRepository(cfg)

	var publisher service.EventPublisher
	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		var err error
		producer, err = kafka.NewProducer(kafka_config.Load(), cfg.KafkaTopic)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
		}
		publisher = producer
		cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaTopic)
	}

	availabilityService := service.NewAvailabilityService(
		availabilityRepo,
		availabilityValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "database", cfg.MongoDatabaseName)
	return availabilityService, producer
}
