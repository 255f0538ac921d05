package pubsub

import "cloud.google.com/go/pubsub"

// Topics the scoring path publishes on.
const (
	TopicScoreRecorded = "score-recorded"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}
