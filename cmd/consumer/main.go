package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/model"
	"github.com/thep200/github-showcase/pkg/db"
	"github.com/thep200/github-showcase/pkg/kafka"
	"github.com/thep200/github-showcase/pkg/log"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	batchSize := flag.Int("batch", 100, "Cards per database write")
	batchTimeout := flag.Duration("flush", 5*time.Second, "Longest wait before a partial batch is written")
	flag.Parse()

	loader := cfg.NewViperLoader(*configPath)
	config, err := loader.DisableWatch().Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewCslLogger()
	logger.SetDebug(config.App.Debug)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mysql := db.NewMysql(config)
	defer mysql.Close()
	repoCard := model.NewRepoCard(config, logger, mysql)
	if err := mysql.Migrate(repoCard); err != nil {
		logger.Error(ctx, "Failed to migrate database: %v", err)
		os.Exit(1)
	}

	consumer, err := kafka.NewConsumer(config, logger, config.Kafka.TopicCard, config.Kafka.GroupID)
	if err != nil {
		logger.Error(ctx, "Failed to create consumer: %v", err)
		os.Exit(1)
	}

	messages := make(chan model.CardMessage, *batchSize*2)
	done := make(chan struct{})
	go func() {
		defer close(done)
		batchCards(ctx, messages, *batchSize, *batchTimeout, func(batch []model.CardMessage) {
			saveBatch(logger, repoCard, batch)
		})
	}()

	// Cards are keyed by repository name, so one handler takes every key.
	consumer.RegisterFallback(cardHandler(messages))

	logger.Info(ctx, "Card consumer started on %s", config.Kafka.TopicCard)
	if err := consumer.Start(ctx); err != nil {
		logger.Error(ctx, "Card consumer error: %v", err)
	}
	consumer.Close()
	<-done
	logger.Info(context.Background(), "Card consumer stopped")
}

func cardHandler(out chan<- model.CardMessage) kafka.Handler {
	return func(ctx context.Context, data []byte) error {
		var msg model.CardMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal card message: %w", err)
		}
		if msg.Account == "" || msg.Card.Name == "" {
			return fmt.Errorf("card message %s has no account or repository", msg.EventID)
		}

		select {
		case out <- msg:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// batchCards groups messages and calls flush when a batch is full, when
// timeout passes with a partial batch, and once more when ctx ends.
func batchCards(ctx context.Context, messages <-chan model.CardMessage, batchSize int,
	batchTimeout time.Duration, flush func([]model.CardMessage)) {

	var batch []model.CardMessage
	timer := time.NewTimer(batchTimeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			// Handlers already acknowledged anything queued, so drain it.
		drain:
			for {
				select {
				case msg := <-messages:
					batch = append(batch, msg)
				default:
					break drain
				}
			}
			if len(batch) > 0 {
				flush(batch)
			}
			return

		case msg := <-messages:
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				flush(batch)
				batch = nil
				timer.Reset(batchTimeout)
			}

		case <-timer.C:
			if len(batch) > 0 {
				flush(batch)
				batch = nil
			}
			timer.Reset(batchTimeout)
		}
	}
}

// saveBatch writes with a fresh context so the final flush survives shutdown.
func saveBatch(logger log.Logger, repoCard *model.RepoCard, batch []model.CardMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info(ctx, "Processing batch of %d cards", len(batch))
	if err := repoCard.UpsertBatch(ctx, batch); err != nil {
		logger.Error(ctx, "Failed to save batch of cards: %v", err)
		return
	}
	logger.Info(ctx, "Saved batch of %d cards", len(batch))
}
