package command

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arogya/queue-service/internal/config"
	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/domain"
	"arogya/queue-service/internal/infra"
	"arogya/queue-service/internal/repository"
)

// NotifierCommand consumes notification events from Kafka and persists
// them as inbox rows. Runs separately from the API server so a delivery
// backlog never slows the ledger down.
type NotifierCommand struct {
	Logger *log.Logger
}

func (cmd NotifierCommand) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "notifier",
		Short: "consume notification events from Kafka and persist them",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.main(cfg, ctx)
		},
	}
}

func (cmd NotifierCommand) main(cfg *config.Config, ctx context.Context) {
	db, err := infra.NewPostgresClient(ctx, cfg.Database.Postgres)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatalf("failed to connect to postgresql: %v", err)
	}

	consumer := infra.NewKafkaConsumer(cfg.Kafka, constant.TopicNotifications, "queue-notifier")
	defer func() {
		if err := consumer.Close(); err != nil {
			cmd.Logger.WithContext(ctx).Errorf("failed to close Kafka consumer: %v", err)
		}
	}()

	notificationRepo := repository.NewNotificationRepository(db.GetDb())

	numConsumers := cfg.WorkerCount
	if numConsumers == 0 {
		numConsumers = 4
	}

	cmd.Logger.WithContext(ctx).Infof("starting %d consumer goroutines for %s topic", numConsumers, constant.TopicNotifications)

	eventChan := make(chan domain.NotificationEvent, 1000)

	for i := 0; i < numConsumers; i++ {
		consumerID := i
		go func() {
			for {
				select {
				case <-ctx.Done():
					cmd.Logger.WithContext(ctx).Infof("consumer %d: context cancelled, shutting down", consumerID)
					return
				default:
					m, err := consumer.ReadMessage(ctx)
					if err != nil {
						select {
						case <-ctx.Done():
							return
						default:
						}
						cmd.Logger.WithContext(ctx).Errorf("consumer %d: read error: %v", consumerID, err)
						time.Sleep(500 * time.Millisecond)
						continue
					}

					var ev domain.NotificationEvent
					if err := json.Unmarshal(m.Value, &ev); err != nil {
						cmd.Logger.WithContext(ctx).Errorf("consumer %d: failed to unmarshal event: %v, raw: %s", consumerID, err, string(m.Value))
						continue
					}

					select {
					case eventChan <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	numWriters := 4
	for i := 0; i < numWriters; i++ {
		writerID := i
		go func() {
			for {
				select {
				case <-ctx.Done():
					cmd.Logger.WithContext(ctx).Infof("writer %d: context cancelled, shutting down", writerID)
					return
				case ev := <-eventChan:
					insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
					if err := notificationRepo.Insert(insertCtx, ev); err != nil {
						cmd.Logger.WithContext(ctx).Errorf("writer %d: failed to insert notification: %v", writerID, err)
					}
					cancel()
				}
			}
		}()
	}

	cmd.Logger.WithContext(ctx).Info("notifier started successfully")

	<-ctx.Done()
	cmd.Logger.WithContext(ctx).Info("notifier: shutting down gracefully...")
	time.Sleep(2 * time.Second)
}
