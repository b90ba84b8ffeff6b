package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/landmask-etl/internal/config"
	"github.com/couchcryptid/landmask-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Message is the JSON value of a published land map. Mask holds one string
// per row, '1' for land and '0' for sea, row 0 at the southern edge.
type Message struct {
	Resolution  int       `json:"resolution"`
	Base        string    `json:"base_shape"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	Mask        []string  `json:"mask"`
	LandCells   int       `json:"land_cells"`
	Samples     int       `json:"samples"`
	FromCache   bool      `json:"from_cache"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Writer produces land map messages to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// Publish writes lm as a single message keyed by resolution and shape, so
// compacted topics keep the latest map per grid.
func (w *Writer) Publish(ctx context.Context, lm domain.LandMap) error {
	msg, err := serializeToMessage(lm)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	w.logger.Info("land map produced", "topic", w.writer.Topic, "key", string(msg.Key), "bytes", len(msg.Value))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// DecodeMessage parses a message value produced by Writer and rebuilds the mask.
func DecodeMessage(value []byte) (Message, domain.Mask, error) {
	var m Message
	if err := json.Unmarshal(value, &m); err != nil {
		return Message{}, domain.Mask{}, fmt.Errorf("decode land map: %w", err)
	}
	mask, err := domain.MaskFromRows(m.Mask)
	if err != nil {
		return Message{}, domain.Mask{}, fmt.Errorf("decode land map: %w", err)
	}
	if got := mask.Shape(); got.Rows != m.Rows || got.Cols != m.Cols {
		return Message{}, domain.Mask{}, fmt.Errorf("decode land map: mask is %s, header says %dx%d", got, m.Rows, m.Cols)
	}
	return m, mask, nil
}

func messageKey(lm domain.LandMap) string {
	return fmt.Sprintf("landmask-%d-%s", lm.Resolution, lm.Mask.Shape())
}

// serializeToMessage marshals a LandMap into a Kafka message.
func serializeToMessage(lm domain.LandMap) (kafkago.Message, error) {
	shape := lm.Mask.Shape()
	data, err := json.Marshal(Message{
		Resolution:  lm.Resolution,
		Base:        lm.Base.String(),
		Rows:        shape.Rows,
		Cols:        shape.Cols,
		Mask:        lm.Mask.Rows(),
		LandCells:   lm.Mask.LandCount(),
		Samples:     lm.Samples,
		FromCache:   lm.FromCache,
		GeneratedAt: lm.GeneratedAt,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize land map: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(messageKey(lm)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "resolution", Value: []byte(strconv.Itoa(lm.Resolution))},
			{Key: "generated_at", Value: []byte(lm.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
