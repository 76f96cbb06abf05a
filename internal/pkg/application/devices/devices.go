package devices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/RaniaNeuss/FM-Backend/internal/pkg/application/devices/httppoller"
	"github.com/RaniaNeuss/FM-Backend/internal/pkg/infrastructure/storage"
	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("fm-backend/devices")

var ErrDeviceNotRegistered = errors.New("device is not registered with the supervisor")

//go:generate moq -rm -out devicerepository_mock.go . DeviceRepository
type DeviceRepository interface {
	GetDevices(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.DeviceConfig], error)
	GetDevice(ctx context.Context, deviceID string) (types.DeviceConfig, error)
	CreateOrUpdateDevice(ctx context.Context, device types.DeviceConfig) error
	SetTag(ctx context.Context, tag types.TagValue) error
}

//go:generate moq -rm -out supervisor_mock.go . Supervisor
type Supervisor interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context)

	Register(ctx context.Context, device types.DeviceConfig) error
	Unregister(ctx context.Context, deviceID string) error
	Reconfigure(ctx context.Context, device types.DeviceConfig) error

	SetValue(ctx context.Context, deviceID, tagID, value string) error
}

type devicePoller interface {
	Connect(ctx context.Context) error
	Poll(ctx context.Context) (httppoller.Snapshot, error)
	SetValue(ctx context.Context, tagID, value string) error
	Status() string
}

func New(storage DeviceRepository, msgCtx messaging.MsgContext) Supervisor {
	return &supervisor{
		storage: storage,
		msgCtx:  msgCtx,
		runners: map[string]*runner{},
		newPoller: func(device types.DeviceConfig) devicePoller {
			return httppoller.New(device)
		},
	}
}

type supervisor struct {
	storage   DeviceRepository
	msgCtx    messaging.MsgContext
	newPoller func(types.DeviceConfig) devicePoller

	mu      sync.Mutex
	runners map[string]*runner
}

// runner owns the polling loop of one device. Exactly one runner exists
// per registered, enabled device.
type runner struct {
	device types.DeviceConfig
	poller devicePoller
	cancel context.CancelFunc
	done   chan struct{}

	lastStatus string
}

// Start loads all enabled devices from storage, spins up one polling
// loop per device and subscribes to device lifecycle events.
func (s *supervisor) Start(ctx context.Context) error {
	handlers := map[string]messaging.TopicMessageHandler{
		(&types.DeviceCreated{}).TopicName(): NewDeviceCreatedHandler(s.storage, s),
		(&types.DeviceUpdated{}).TopicName(): NewDeviceUpdatedHandler(s.storage, s),
		(&types.DeviceDeleted{}).TopicName(): NewDeviceDeletedHandler(s.storage, s),
	}

	for topic, handler := range handlers {
		err := s.msgCtx.RegisterTopicMessageHandler(topic, handler)
		if err != nil {
			return fmt.Errorf("could not register handler for %s: %w", topic, err)
		}
	}

	collection, err := s.storage.GetDevices(ctx, storage.WithEnabled(true))
	if err != nil {
		return fmt.Errorf("could not load devices: %w", err)
	}

	pollable := lo.Filter(collection.Data, func(d types.DeviceConfig, _ int) bool {
		return d.Type == types.DeviceTypeWebAPI
	})

	log := logging.GetFromContext(ctx)

	for _, device := range pollable {
		err := s.Register(ctx, device)
		if err != nil {
			log.Error("could not register device", "device_id", device.ID, "err", err.Error())
		}
	}

	log.Info("device supervisor started", slog.Int("devices", len(pollable)))

	return nil
}

// Stop cancels every polling loop and waits for them to drain.
func (s *supervisor) Stop(ctx context.Context) {
	s.mu.Lock()
	runners := make([]*runner, 0, len(s.runners))
	for id, r := range s.runners {
		runners = append(runners, r)
		delete(s.runners, id)
	}
	s.mu.Unlock()

	for _, r := range runners {
		r.cancel()
		<-r.done
	}
}

// Register starts polling a device. Registering an already running
// device, a disabled device or an unsupported device type is a no-op.
func (s *supervisor) Register(ctx context.Context, device types.DeviceConfig) error {
	log := logging.GetFromContext(ctx)

	if !device.Enabled {
		log.Debug("ignoring disabled device", "device_id", device.ID)
		return nil
	}

	if device.Type != types.DeviceTypeWebAPI {
		log.Debug("ignoring device of unsupported type", "device_id", device.ID, "device_type", device.Type)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runners[device.ID]; exists {
		return nil
	}

	runCtx, cancel := context.WithCancel(
		logging.NewContextWithLogger(context.Background(), log.With(slog.String("device_id", device.ID))),
	)

	r := &runner{
		device: device,
		poller: s.newPoller(device),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.runners[device.ID] = r

	go s.run(runCtx, r)

	return nil
}

// Unregister stops polling a device. Unknown device ids are ignored.
func (s *supervisor) Unregister(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	r, exists := s.runners[deviceID]
	if exists {
		delete(s.runners, deviceID)
	}
	s.mu.Unlock()

	if !exists {
		return nil
	}

	r.cancel()
	<-r.done

	s.publishStatus(ctx, deviceID, types.ConnectOff, r)

	return nil
}

// Reconfigure applies a changed device configuration. The loop is only
// restarted when something the runtime cares about actually changed.
func (s *supervisor) Reconfigure(ctx context.Context, device types.DeviceConfig) error {
	s.mu.Lock()
	r, running := s.runners[device.ID]
	s.mu.Unlock()

	if !running {
		return s.Register(ctx, device)
	}

	if !device.Enabled {
		return s.Unregister(ctx, device.ID)
	}

	// cosmetic changes do not affect the running loop
	prev := r.device
	if prev.PollingMs == device.PollingMs && prev.Property == device.Property && prev.Type == device.Type {
		return nil
	}

	err := s.Unregister(ctx, device.ID)
	if err != nil {
		return err
	}

	return s.Register(ctx, device)
}

// SetValue writes a value back to a device endpoint, used by action
// alarms to actuate remote state.
func (s *supervisor) SetValue(ctx context.Context, deviceID, tagID, value string) error {
	s.mu.Lock()
	r, exists := s.runners[deviceID]
	s.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrDeviceNotRegistered, deviceID)
	}

	return r.poller.SetValue(ctx, tagID, value)
}

func (s *supervisor) run(ctx context.Context, r *runner) {
	defer close(r.done)

	log := logging.GetFromContext(ctx)

	interval := time.Duration(r.device.PollingMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}

	err := r.poller.Connect(ctx)
	s.publishStatus(ctx, r.device.ID, r.poller.Status(), r)

	if err != nil {
		log.Error("could not connect to device, polling not scheduled", "err", err.Error())
		s.removeRunner(r.device.ID, r)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx, r)
		}
	}
}

// removeRunner drops a runner from the table unless a newer
// registration already replaced it, so the device can be registered
// again after a failed connect.
func (s *supervisor) removeRunner(deviceID string, r *runner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.runners[deviceID]; ok && current == r {
		delete(s.runners, deviceID)
	}
}

func (s *supervisor) pollOnce(ctx context.Context, r *runner) {
	var err error
	ctx, span := tracer.Start(ctx, "poll-device")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	snapshot, err := r.poller.Poll(ctx)
	if err != nil {
		if errors.Is(err, httppoller.ErrBusy) {
			log.Debug("previous poll still in progress, skipping tick")
			err = nil
		} else {
			log.Error("poll failed", "err", err.Error())
		}

		s.publishStatus(ctx, r.device.ID, r.poller.Status(), r)
		return
	}

	for _, tag := range snapshot.Changed {
		tag.ID = r.device.ID + "." + tag.ID

		e := s.storage.SetTag(ctx, tag)
		if e != nil {
			log.Error("could not store tag value", "tag_id", tag.ID, "err", e.Error())
			continue
		}

		e = s.msgCtx.PublishOnTopic(ctx, &types.TagValueChanged{
			DeviceID:  r.device.ID,
			Tag:       tag,
			Timestamp: tag.UpdatedAt,
		})
		if e != nil {
			log.Error("could not publish tag value change", "tag_id", tag.ID, "err", e.Error())
		}
	}

	if len(snapshot.Values) > 0 {
		e := s.msgCtx.PublishOnTopic(ctx, &types.DeviceValuesReported{
			DeviceID:  r.device.ID,
			Values:    snapshot.Values,
			Timestamp: snapshot.At,
		})
		if e != nil {
			log.Error("could not publish device values", "err", e.Error())
		}
	}

	s.publishStatus(ctx, r.device.ID, r.poller.Status(), r)
}

// publishStatus emits a status event when the connection status of a
// device differs from the last published one.
func (s *supervisor) publishStatus(ctx context.Context, deviceID, status string, r *runner) {
	if status == r.lastStatus {
		return
	}
	r.lastStatus = status

	err := s.msgCtx.PublishOnTopic(ctx, &types.DeviceStatusChanged{
		DeviceID:  deviceID,
		Status:    status,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logging.GetFromContext(ctx).Error("could not publish device status", "device_id", deviceID, "err", err.Error())
	}
}
