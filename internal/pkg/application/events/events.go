package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"golang.org/x/sys/unix"
	yaml "gopkg.in/yaml.v2"
)

const (
	AlarmChangedEventType = "fm.alarmChanged"
	DeviceStatusEventType = "fm.deviceStatus"
)

// EventSender forwards runtime events as cloud events to the external
// subscribers configured in the notification file.
type EventSender interface {
	Send(ctx context.Context, eventType, id string, timestamp time.Time, data any) error
}

type eventSender struct {
	subscribers map[string][]SubscriberConfig
}

func New(cfg *Config) EventSender {
	e := &eventSender{
		subscribers: make(map[string][]SubscriberConfig),
	}

	if cfg != nil {
		for _, s := range cfg.Notifications {
			e.subscribers[s.Type] = s.Subscribers
		}
	}

	return e
}

func (e *eventSender) Send(ctx context.Context, eventType, id string, timestamp time.Time, data any) error {
	if s, ok := e.subscribers[eventType]; !ok || len(s) == 0 {
		return nil
	}

	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return err
	}

	event := cloudevents.NewEvent()
	event.SetID(fmt.Sprintf("%s:%d", id, timestamp.Unix()))
	event.SetTime(timestamp)
	event.SetSource("github.com/RaniaNeuss/FM-Backend")
	event.SetType(eventType)

	err = event.SetData(cloudevents.ApplicationJSON, data)
	if err != nil {
		return err
	}

	log := logging.GetFromContext(ctx)

	for _, s := range e.subscribers[eventType] {
		ctxWithTarget := cloudevents.ContextWithTarget(ctx, s.Endpoint)

		result := c.Send(ctxWithTarget, event)
		if cloudevents.IsUndelivered(result) || errors.Is(result, unix.ECONNREFUSED) {
			log.Error("failed to send event", "endpoint", s.Endpoint, "err", result.Error())
			err = fmt.Errorf("%w", result)
		}
	}

	return err
}

// NewAlarmChangedHandler forwards alarm transitions to subscribers.
func NewAlarmChangedHandler(sender EventSender) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, log *slog.Logger) {
		message := types.AlarmChanged{}

		err := json.Unmarshal(itm.Body(), &message)
		if err != nil {
			log.Error("could not unmarshal message", "err", err.Error())
			return
		}

		err = sender.Send(ctx, AlarmChangedEventType, message.AlarmID, message.Timestamp, message)
		if err != nil {
			log.Error("could not notify subscribers", "alarm_id", message.AlarmID, "err", err.Error())
		}
	}
}

// NewDeviceStatusChangedHandler forwards device connection status
// changes to subscribers.
func NewDeviceStatusChangedHandler(sender EventSender) messaging.TopicMessageHandler {
	return func(ctx context.Context, itm messaging.IncomingTopicMessage, log *slog.Logger) {
		message := types.DeviceStatusChanged{}

		err := json.Unmarshal(itm.Body(), &message)
		if err != nil {
			log.Error("could not unmarshal message", "err", err.Error())
			return
		}

		err = sender.Send(ctx, DeviceStatusEventType, message.DeviceID, message.Timestamp, message)
		if err != nil {
			log.Error("could not notify subscribers", "device_id", message.DeviceID, "err", err.Error())
		}
	}
}

type SubscriberConfig struct {
	Endpoint string `yaml:"endpoint"`
}

type Notification struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Type        string             `yaml:"type"`
	Subscribers []SubscriberConfig `yaml:"subscribers"`
}

type Config struct {
	Notifications []Notification `yaml:"notifications"`
}

func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if err := yaml.Unmarshal(buf, &cfg); err == nil {
		return &cfg, nil
	} else {
		return nil, err
	}
}
