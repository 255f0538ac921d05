package pubsub

// PubSubClient publishes league events for out-of-process consumers
// (reminder jobs, the sub/swap marketplace, anything that reacts to "a
// score was recorded").
type PubSubClient interface {
	SendMessage(topic string, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
