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
	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"

	"github.com/rbroggi/randomusersvc/internal/actors/postgres"
	produceractor "github.com/rbroggi/randomusersvc/internal/actors/pubsub/producer"
	"github.com/rbroggi/randomusersvc/internal/actors/randomuser"
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

	opts, err := pg.ParseURL(cfg.DB.URL)
	if err != nil {
		return err
	}
	db := pg.Connect(opts)
	defer db.Close()
	if err := db.Ping(ctx); err != nil {
		log.WithError(err).Error("db does not appear to be reachable")
		return err
	}

	store, err := postgres.NewPostgresDB(postgres.PostgresDBArgs{DB: db})
	if err != nil {
		log.WithError(err).Error("could not initialize postgres actor")
		return err
	}

	source, err := randomuser.NewClient(
		randomuser.ClientArgs{BaseURL: cfg.Source.BaseURL},
		randomuser.WithHTTPClient(&http.Client{Timeout: cfg.Source.Timeout}),
	)
	if err != nil {
		log.WithError(err).Error("could not initialize random-user client")
		return err
	}

	usecaseOpts := []usecase.UserServiceOptArgs{}
	if cfg.PubSub.ProjectID != "" {
		client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID)
		if err != nil {
			return err
		}
		defer client.Close()
		producer, err := produceractor.NewProducer(client.Topic(cfg.PubSub.TopicID))
		if err != nil {
			return err
		}
		usecaseOpts = append(usecaseOpts, usecase.WithSender(producer))
	}

	userSvc := usecase.NewUserService(usecase.UserServiceArgs{Source: source, Store: store}, usecaseOpts...)
	router := rest.NewRouter(rest.NewUserHandler(rest.UserHandlerArgs{Usecase: userSvc}))

	srv := &http.Server{Addr: cfg.HTTP.Addr(), Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	log.
		WithField("http-server-addr", cfg.HTTP.Addr()).
		WithField("source-base-url", cfg.Source.BaseURL).
		Info("server up or soon to be up. listening to SIGTERM, SIGINT, SIGQUIT for stoping the server")

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
