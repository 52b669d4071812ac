package notifiers

import (
	"crypto/tls"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nsqio/go-nsq"
	"github.com/nzai/nseq/config"
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/symbols"
	"go.uber.org/zap"
)

// Publisher publish message bodies to a topic
type Publisher interface {
	Publish(topic string, body []byte) error
	Stop()
}

// queueSize events waiting for the broker before new ones are dropped
const queueSize = 256

type message struct {
	event *Event
	body  []byte
}

// Nsq publish rendered events by nsq. Rendering only queues the event,
// a background goroutine talks to the broker.
type Nsq struct {
	topic     string
	publisher Publisher
	now       func() time.Time
	queue     chan message
	done      chan struct{}

	mutex  sync.Mutex
	symbol symbols.Symbol
	closed bool
}

// NewNsq create new nsq notifier
func NewNsq(cfg config.Nsq) (*Nsq, error) {
	config := nsq.NewConfig()
	if cfg.TLSCert != "" {
		cert, err := tls.LoadX509KeyPair(cfg.TLSCert, cfg.TLSKey)
		if err != nil {
			zap.L().Error("init tls certificate failed",
				zap.Error(err),
				zap.String("tlsCert", cfg.TLSCert),
				zap.String("tlsKey", cfg.TLSKey))
			return nil, err
		}

		config.TlsV1 = true
		config.TlsConfig = &tls.Config{
			InsecureSkipVerify: true,
			Certificates:       []tls.Certificate{cert},
		}
	}

	producer, err := nsq.NewProducer(cfg.Broker, config)
	if err != nil {
		zap.L().Error("init nsq producer failed",
			zap.Error(err),
			zap.String("broker", cfg.Broker))
		return nil, err
	}

	return NewPublisherNotifier(producer, cfg.Topic), nil
}

// NewPublisherNotifier create notifier over any publisher
func NewPublisherNotifier(publisher Publisher, topic string) *Nsq {
	notifier := &Nsq{
		topic:     topic,
		publisher: publisher,
		now:       time.Now,
		queue:     make(chan message, queueSize),
		done:      make(chan struct{}),
	}

	go notifier.run()

	return notifier
}

// RenderQuote publish snapshot
func (s *Nsq) RenderQuote(snapshot *quotes.Snapshot) {
	if snapshot == nil {
		return
	}

	s.mutex.Lock()
	s.symbol = snapshot.Symbol
	s.mutex.Unlock()

	s.publish(&Event{Event: EventQuote, Symbol: snapshot.Symbol, Snapshot: snapshot})
}

// RenderError publish error message
func (s *Nsq) RenderError(message string) {
	s.publish(&Event{Event: EventError, Symbol: s.lastSymbol(), Message: message})
}

// RenderLoading nothing to publish
func (s *Nsq) RenderLoading() {}

// RenderUpdatesPaused publish paused event of the last published symbol
func (s *Nsq) RenderUpdatesPaused() {
	s.publish(&Event{Event: EventPaused, Symbol: s.lastSymbol()})
}

func (s *Nsq) lastSymbol() symbols.Symbol {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.symbol
}

func (s *Nsq) publish(event *Event) {
	event.At = s.now().Unix()

	buffer, err := sonic.Marshal(event)
	if err != nil {
		zap.L().Warn("marshal event failed",
			zap.Error(err),
			zap.Any("event", event))
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return
	}

	select {
	case s.queue <- message{event: event, body: buffer}:
	default:
		zap.L().Warn("publish queue full, drop event",
			zap.String("topic", s.topic),
			zap.String("event", event.Event),
			zap.Stringer("symbol", event.Symbol))
	}
}

// run publish queued events until the queue is closed
func (s *Nsq) run() {
	defer close(s.done)

	for queued := range s.queue {
		err := s.publisher.Publish(s.topic, queued.body)
		if err != nil {
			zap.L().Warn("publish event failed",
				zap.Error(err),
				zap.String("topic", s.topic),
				zap.String("event", queued.event.Event),
				zap.Stringer("symbol", queued.event.Symbol))
			continue
		}

		zap.L().Debug("publish event success",
			zap.String("topic", s.topic),
			zap.String("event", queued.event.Event),
			zap.Stringer("symbol", queued.event.Symbol))
	}
}

// Close publish what is queued, then stop the producer
func (s *Nsq) Close() error {
	s.mutex.Lock()
	if s.closed {
		s.mutex.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mutex.Unlock()

	<-s.done
	s.publisher.Stop()

	return nil
}
