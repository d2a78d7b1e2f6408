package pubsub

// PubSubClient publishes domain events and decodes received payloads.
type PubSubClient interface {
	SendMessage(topic string, event any) error
	ProcessMessage(payload []byte, out any) error
}
