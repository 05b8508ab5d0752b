package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"nagoyameshi/billing"
	"nagoyameshi/cache"
	"nagoyameshi/config"
	"nagoyameshi/controllers"
	"nagoyameshi/db"
	"nagoyameshi/events"
	"nagoyameshi/logger"
	"nagoyameshi/router"
	"nagoyameshi/storage"
	"nagoyameshi/workers"
)

const homeRefreshInterval = 5 * time.Minute

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	conf, err := config.Load(getenv("CONFIG_FILE", "config.json"))
	if err != nil {
		logrus.WithError(err).Fatal("could not load configuration")
	}
	logger.Init(conf)
	log := logger.Log()

	database, err := db.Connect(conf)
	if err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	home := cache.NewHomeCache(cache.NewClient(conf), time.Duration(conf.Redis.HomeTTLSeconds)*time.Second)

	publisher := newPublisher(conf, log)
	defer publisher.Close()

	services := &controllers.Services{
		Config: conf,
		Log:    log,
		Billing: &billing.Service{
			Provider: billing.NewStripeProvider(conf.Stripe.SecretKey),
			PriceID:  conf.Stripe.PriceID,
			Log:      log,
		},
		Events: publisher,
		Home:   home,
		Images: storage.NewImageStore(conf.Storage.ImageDir),
	}

	if conf.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	router.Initialize(r, database, services)

	workers.StartHomeCacheRefresher(ctx, database, home, homeRefreshInterval, log)

	srv := &http.Server{
		Addr:              ":" + conf.ApiPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("nagoyameshi listening on :%s", conf.ApiPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	<-ctx.Done()
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// newPublisher picks the event broker from config. A broker that cannot be
// reached leaves events disabled rather than stopping the site.
func newPublisher(conf config.Configuration, log *logrus.Logger) events.Publisher {
	switch conf.Events.Driver {
	case "kafka":
		return events.NewKafkaPublisher(events.NewKafkaWriter(conf.Events.Brokers, conf.Events.Topic))
	case "amqp":
		p, err := events.DialAMQP(conf.Events.AmqpURL, conf.Events.Topic)
		if err != nil {
			log.WithError(err).Warn("amqp unavailable, events disabled")
			return events.Noop{}
		}
		return p
	}
	return events.Noop{}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
