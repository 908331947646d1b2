package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() OrderPlaced {
	userID := uint(3)
	return NewOrderPlaced(models.Order{
		ID:         42,
		Reference:  "ref-42",
		UserID:     &userID,
		TotalPrice: decimal.RequireFromString("8.97"),
		OrderDate:  time.Date(2026, 1, 2, 8, 30, 0, 0, time.UTC),
		Items: []models.OrderItem{
			{ItemName: "Croissant", Quantity: 3, Price: decimal.RequireFromString("8.97")},
		},
	}, "ana")
}

type recorder struct {
	events []OrderPlaced
	err    error
}

func (r *recorder) PublishOrderPlaced(_ context.Context, e OrderPlaced) error {
	r.events = append(r.events, e)
	return r.err
}

func TestNewOrderPlaced_Guest(t *testing.T) {
	e := NewOrderPlaced(models.Order{ID: 1, Reference: "r"}, "ignored")
	assert.Nil(t, e.UserID)
	assert.Equal(t, models.GuestOrdersTitle, e.Username)
}

func TestMulti_PublishesToAllAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	ok := &recorder{}
	failing := &recorder{err: boom}

	err := Multi{failing, ok, Nop{}}.PublishOrderPlaced(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, boom)
	assert.Len(t, failing.events, 1)
	assert.Len(t, ok.events, 1, "a failing publisher must not stop the others")
}

type fakeWriter struct {
	msgs []kafkaGo.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkaGo.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_WritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}

	require.NoError(t, p.PublishOrderPlaced(context.Background(), sampleEvent()))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "ref-42", string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "OrderPlaced", string(msg.Headers[0].Value))

	var got OrderPlaced
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, uint(42), got.OrderID)
	assert.Equal(t, "ana", got.Username)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("8.97")))
}

func TestHub_BroadcastsToConnectedClients(t *testing.T) {
	hub := NewHub()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, hub.PublishOrderPlaced(context.Background(), sampleEvent()))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got OrderPlaced
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "ref-42", got.Reference)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Croissant", got.Items[0].ItemName)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishWithoutClients(t *testing.T) {
	assert.NoError(t, NewHub().PublishOrderPlaced(context.Background(), sampleEvent()))
}
