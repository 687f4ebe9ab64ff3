package command

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"arogya/queue-service/internal/api"
	adminHandler "arogya/queue-service/internal/api/handler/admin"
	insightsHandler "arogya/queue-service/internal/api/handler/insights"
	queueHandler "arogya/queue-service/internal/api/handler/queue"
	staffHandler "arogya/queue-service/internal/api/handler/staff"
	tokenHandler "arogya/queue-service/internal/api/handler/token"
	"arogya/queue-service/internal/config"
	"arogya/queue-service/internal/constant"
	"arogya/queue-service/internal/infra"
	"arogya/queue-service/internal/repository"
	ledgerService "arogya/queue-service/internal/service/ledger"
	notifyService "arogya/queue-service/internal/service/notify"
)

type Server struct {
	Logger *logrus.Logger
}

func (cmd Server) Command(ctx context.Context, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "run queue API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.main(cfg, ctx)
		},
	}
}

func (cmd Server) main(cfg *config.Config, ctx context.Context) {
	db, err := infra.NewPostgresClient(ctx, cfg.Database.Postgres)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "server : failed to connect to postgresql"))
		return
	}

	redisClient, err := infra.NewRedisClient(ctx, cfg.Database.Redis, cmd.Logger)
	if err != nil {
		cmd.Logger.WithContext(ctx).Fatal(errors.Wrap(err, "server : failed to connect to redis"))
		return
	}

	defer func() {
		if err = redisClient.Close(); err != nil {
			cmd.Logger.WithContext(ctx).Error(errors.Wrap(err, "server : failed to close redis"))
		}
	}()

	kafkaWriter := infra.NewKafkaWriter(cfg.Kafka, constant.TopicNotifications)

	// create repositories
	queueRepository := repository.NewQueueRepository(db.GetDb())
	tokenRepository := repository.NewTokenRepository(db.GetDb())
	historyRepository := repository.NewHistoryRepository(db.GetDb())
	suggestionRepository := repository.NewSuggestionRepository(db.GetDb())
	notificationRepository := repository.NewNotificationRepository(db.GetDb())
	dlqRepository := repository.NewDlqRepository(db.GetDb())
	userRepository := repository.NewUserRepository(db.GetDb())

	// create services
	emitter := notifyService.NewEmitter(kafkaWriter, dlqRepository, cmd.Logger)
	snapshotCache := ledgerService.NewSnapshotCache(redisClient, cmd.Logger)
	ledger := ledgerService.NewLedger(
		queueRepository,
		userRepository,
		emitter,
		snapshotCache,
		cmd.Logger,
		cfg.Queue.AvgServiceMinutes,
	)

	// create handlers
	tokens := tokenHandler.New(ledger, tokenRepository, suggestionRepository, notificationRepository)
	queues := queueHandler.New(ledger, historyRepository)
	staffs := staffHandler.New(ledger)
	admins := adminHandler.New(ledger)
	insights := insightsHandler.New()

	server := api.New(cfg.AppEnv)
	server.SetupAPIRoutes(tokens, queues, staffs, admins, insights)

	// start background notification workers
	for i := 0; i < constant.NotifyWorkerCount; i++ {
		go emitter.ProduceMessages(i)
	}
	cmd.Logger.WithContext(ctx).Infof("started %d notification producer workers", constant.NotifyWorkerCount)

	defer func() {
		cmd.Logger.Info("shutting down notification emitter...")
		emitter.Stop()
		cmd.Logger.Info("notification emitter stopped")
	}()

	// run the server
	if err := server.Serve(ctx, fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
		cmd.Logger.Fatal(err)
	}
}
