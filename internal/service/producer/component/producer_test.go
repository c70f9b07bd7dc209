package compproducer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RamonCharlles/Gestao-componentes/internal/converter"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/kafka"
)

type fakeProducer struct {
	sent []kafka.OutgoingMessage
	err  error
}

func (p *fakeProducer) Send(_ context.Context, msg kafka.OutgoingMessage) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, msg)
	return nil
}

func TestNotifyRegistered(t *testing.T) {
	t.Parallel()

	conv := converter.NewKafkaConverter()
	p := &fakeProducer{}
	svc := NewComponentProducer(p, conv)
	at := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	rec := model.Record{ID: uuid.New(), PartNumber: "PN-1", EquipmentTag: "CAT-793", WithdrawalDate: "2024-06-01"}
	require.NoError(t, svc.NotifyRegistered(context.Background(), rec))

	require.Len(t, p.sent, 1)
	msg := p.sent[0]
	assert.Equal(t, []byte(rec.ID.String()), msg.Key)
	assert.Equal(t, converter.EventTypeComponentRegistered, msg.Headers["event_type"])

	ev, err := conv.PayloadToComponentRegistered(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, ev.RecordID)
	assert.Equal(t, msg.Headers["event_id"], ev.EventID.String())
	assert.True(t, at.Equal(ev.OccurredAt))
}

func TestNotifyRegisteredProducerError(t *testing.T) {
	t.Parallel()

	svc := NewComponentProducer(&fakeProducer{err: errors.New("no brokers")}, converter.NewKafkaConverter())

	err := svc.NotifyRegistered(context.Background(), model.Record{ID: uuid.New()})
	require.ErrorContains(t, err, "no brokers")
}

func TestLogNotifier(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewLogNotifier().NotifyRegistered(context.Background(), model.Record{ID: uuid.New()}))
}
