package constant

import (
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	UserIdKey   = "user_id"
	UserRoleKey = "user_role"

	RedisSnapshotKey = "arogya:queue:snapshot"

	TopicNotifications  = "queue.notifications"
	KafkaProducerAcks   = kafka.RequireAll
	KafkaWriteTimeout   = 5 * time.Second
	KafkaWriteRetries   = 3
	KafkaRetryBackoff   = 500 * time.Millisecond
	NotifyWorkerCount   = 4
	NotifyWorkerBufSize = 10000 // capacity of in-memory channel; tune by memory and expected bursts

	DBTxTimeout = 2 * time.Second // keep transactions short

	// DefaultAvgServiceMinutes is used for wait estimates when the admin
	// has not tuned a value.
	DefaultAvgServiceMinutes = 5.0

	// NextTokensInStatus is how many upcoming waiting tokens the public
	// status board shows.
	NextTokensInStatus = 5
)
