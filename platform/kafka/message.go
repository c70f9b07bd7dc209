package kafka

import "time"

// Message is a record received from a topic.
type Message struct {
	Headers        map[string][]byte
	Timestamp      time.Time
	BlockTimestamp time.Time

	Key       []byte
	Value     []byte
	Topic     string
	Partition int32
	Offset    int64
}

// OutgoingMessage is a record to publish. The topic is fixed by the producer.
type OutgoingMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

func (m Message) Header(key string) string { return string(m.Headers[key]) }
