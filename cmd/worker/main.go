package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoactor "github.com/rbroggi/randomusersvc/internal/actors/mongo"
	subscriberactor "github.com/rbroggi/randomusersvc/internal/actors/pubsub/subscriber"
	"github.com/rbroggi/randomusersvc/internal/actors/rest"
	"github.com/rbroggi/randomusersvc/internal/config"
	"github.com/rbroggi/randomusersvc/internal/core/usecase"
)

func init() {
	// Log as JSON instead of the default ASCII formatter.
	log.SetFormatter(&log.JSONFormatter{})

	// Output to stdout instead of the default stderr
	log.SetOutput(os.Stdout)

	// Only log the DebugLevel severity or above.
	log.SetLevel(log.DebugLevel)
}

var configPath = flag.String("config", "", "path to the YAML configuration file")

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.MustLoad(*configPath)

	db, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		return err
	}
	if err := db.Ping(ctx, nil); err != nil {
		log.WithError(err).Error("mongo does not appear to be reachable")
		return err
	}
	defer db.Disconnect(ctx)
	collection := db.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	archive, err := mongoactor.NewMongoDB(mongoactor.MongoDBArgs{EventCollection: collection})
	if err != nil {
		log.WithError(err).Error("could not initialize mongo actor")
		return err
	}

	informer := usecase.NewInformer(archive)

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
	if err != nil {
		return err
	}
	defer client.Close()

	subscriber := subscriberactor.NewSubscriber(subscriberactor.SubscriberArgs{
		UserEventHandler: informer,
		Subscription:     client.Subscription(cfg.PubSub.SubscriptionID),
	})

	// start subscriber
	go func(ctx context.Context) {
		if err := subscriber.Consume(ctx); err != nil {
			panic(err)
		}
	}(ctx)

	router := rest.NewWorkerRouter(rest.NewEventsHandler(rest.EventsHandlerArgs{Archiver: archive}))
	srv := &http.Server{Addr: cfg.WorkerHTTP.Addr(), Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	log.
		WithField("http-server-addr", cfg.WorkerHTTP.Addr()).
		WithField("subscription-id", cfg.PubSub.SubscriptionID).
		Info("worker up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the worker")

	// Wait for signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-ch

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		panic(err)
	}
}
