package kafka

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/weather-lookup-service/internal/config"
	"github.com/couchcryptid/weather-lookup-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	event := domain.LookupEvent{
		Query:    "Austin",
		Location: domain.Location{Name: "Austin", Lat: 30.2672, Lon: -97.7431},
		Current:  domain.ForecastSample{Timestamp: now.Unix(), TemperatureF: 78.4},
		Daily: []domain.DailySummary{
			{Date: "2024-04-27", Sample: domain.ForecastSample{TemperatureF: 80}},
		},
		LookedUpAt: now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("Austin"), msg.Key)
	assert.Contains(t, string(msg.Value), `"query":"Austin"`)
	assert.Contains(t, string(msg.Value), `"date":"2024-04-27"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "city", msg.Headers[0].Key)
	assert.Equal(t, []byte("Austin"), msg.Headers[0].Value)
	assert.Equal(t, "looked_up_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)

	var decoded domain.LookupEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.Location, decoded.Location)
	assert.True(t, event.LookedUpAt.Equal(decoded.LookedUpAt))
}

func TestNewWriter_UsesConfig(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:     []string{"localhost:9092"},
		KafkaLookupTopic: "weather-lookups",
	}

	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer w.Close()

	assert.Equal(t, "weather-lookups", w.writer.Topic)
	assert.NotNil(t, w.writer.Addr)
}
