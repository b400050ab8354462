package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"adfilter/internal/api"
	"adfilter/internal/classifier"
	"adfilter/internal/config"
	"adfilter/internal/notifier"
	"adfilter/internal/queue"
	"adfilter/internal/redis"
	"adfilter/internal/registry"
	"adfilter/internal/storage"
	"adfilter/internal/worker"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	repo, err := storage.NewPostgres(cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("failed to connect to storage: %v", err)
	}
	defer repo.Close()

	cache, err := redis.New(cfg.Redis.Addr)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer cache.Close()

	consumer, err := queue.NewKafkaConsumer(cfg.Queue.Brokers, cfg.Queue.GroupID, cfg.Queue.Topic)
	if err != nil {
		log.Fatalf("failed to create consumer: %v", err)
	}
	defer consumer.Close()

	var publisher queue.Publisher
	if cfg.Queue.SuppressedTopic != "" {
		publisher, err = queue.NewKafka(cfg.Queue.Brokers, cfg.Queue.SuppressedTopic)
		if err != nil {
			log.Fatalf("failed to create publisher: %v", err)
		}
		defer publisher.Close()
	}

	var notif worker.Notifier
	if cfg.Notifier.TelegramToken != "" {
		notif = notifier.NewTelegram(cfg.Notifier.TelegramToken, cfg.Notifier.TelegramChatIDs)
	}

	gate, err := classifier.NewGate(cfg.Filter.ChatExpression)
	if err != nil {
		log.Fatalf("invalid chat expression: %v", err)
	}

	cls := classifier.New(classifier.Config{
		MaxDistance:         cfg.Filter.MaxDistance,
		Verbose:             cfg.Filter.Verbose,
		AllowKnownChatLinks: cfg.Filter.AllowKnownChatLinks,
	}, nil, nil)

	reg := registry.New()
	slot := registry.NewOrderSlot(worker.BaseOrder)

	w := worker.NewConsumer(consumer, repo, publisher, notif, nil, cache, reg, slot, cls, cfg.Filter.Verbose)

	server := api.NewServer(repo, w)
	w.SetBroadcaster(server)

	mode := registry.NewMode(reg, slot, classifier.NewPredicate(gate, cls, w), cfg.Filter.OrderOverride)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Warm(ctx); err != nil {
		log.Warnf("chat cache warmup failed: %v", err)
	}

	mode.Enable()

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		if err := w.Start(ctx); err != nil {
			log.Errorf("consumer error: %v", err)
		}
	}()

	go func() {
		log.Infof("server starting on %s", cfg.Server.Port)
		if err := server.Start(cfg.Server.Port); err != nil {
			log.Errorf("server error: %v", err)
		}
	}()

	log.Info("app started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()
	<-consumerDone

	// No evaluations are running once the consumer has drained and the
	// server has finished its in-flight handlers; only then is the mode
	// uninstalled.
	if err := server.Shutdown(); err != nil {
		log.Errorf("server shutdown: %v", err)
	}
	mode.Disable()
}
