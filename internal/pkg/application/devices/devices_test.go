package devices

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RaniaNeuss/FM-Backend/internal/pkg/application/devices/httppoller"
	"github.com/RaniaNeuss/FM-Backend/internal/pkg/infrastructure/storage"
	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

type pollerStub struct {
	polls    atomic.Int32
	connect  func() error
	snapshot func() httppoller.Snapshot
	setValue func(tagID, value string) error
}

func (p *pollerStub) Connect(ctx context.Context) error {
	if p.connect != nil {
		return p.connect()
	}
	return nil
}

func (p *pollerStub) Poll(ctx context.Context) (httppoller.Snapshot, error) {
	p.polls.Add(1)
	if p.snapshot != nil {
		return p.snapshot(), nil
	}
	return httppoller.Snapshot{}, nil
}

func (p *pollerStub) SetValue(ctx context.Context, tagID, value string) error {
	if p.setValue != nil {
		return p.setValue(tagID, value)
	}
	return nil
}

func (p *pollerStub) Status() string {
	return types.ConnectOK
}

func testDevice(id string) types.DeviceConfig {
	return types.DeviceConfig{
		ID:        id,
		Name:      "boiler",
		Type:      types.DeviceTypeWebAPI,
		Enabled:   true,
		PollingMs: 10,
		Property:  types.DeviceProperty{Address: "http://127.0.0.1:9000/values"},
	}
}

func testRepository() *DeviceRepositoryMock {
	return &DeviceRepositoryMock{
		GetDevicesFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.DeviceConfig], error) {
			return types.Collection[types.DeviceConfig]{}, nil
		},
		GetDeviceFunc: func(ctx context.Context, deviceID string) (types.DeviceConfig, error) {
			return types.DeviceConfig{}, storage.ErrNoRows
		},
		CreateOrUpdateDeviceFunc: func(ctx context.Context, device types.DeviceConfig) error {
			return nil
		},
		SetTagFunc: func(ctx context.Context, tag types.TagValue) error {
			return nil
		},
	}
}

func testMessenger() *messaging.MsgContextMock {
	return &messaging.MsgContextMock{
		PublishOnTopicFunc: func(ctx context.Context, message messaging.TopicMessage) error {
			return nil
		},
		RegisterTopicMessageHandlerFunc: func(routingKey string, handler messaging.TopicMessageHandler) error {
			return nil
		},
	}
}

func setupSupervisor(r *DeviceRepositoryMock, m *messaging.MsgContextMock, stub *pollerStub) (*supervisor, *atomic.Int32) {
	svc := New(r, m).(*supervisor)

	created := &atomic.Int32{}
	svc.newPoller = func(device types.DeviceConfig) devicePoller {
		created.Add(1)
		return stub
	}

	return svc, created
}

func TestRegisterStartsPollingAndPropagatesValues(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	now := time.Now().UTC()
	stub := &pollerStub{}
	stub.snapshot = func() httppoller.Snapshot {
		if stub.polls.Load() > 1 {
			return httppoller.Snapshot{Values: map[string]types.ReportedValue{
				"temperature": {Value: "21.5", Timestamp: now, Changed: false},
			}, At: now}
		}
		return httppoller.Snapshot{
			Values: map[string]types.ReportedValue{
				"temperature": {Value: "21.5", Timestamp: now, Changed: true},
			},
			Changed: map[string]types.TagValue{
				"temperature": {ID: "temperature", Value: "21.5", UpdatedAt: now},
			},
			At: now,
		}
	}

	r := testRepository()
	m := testMessenger()
	svc, _ := setupSupervisor(r, m, stub)

	is.NoErr(svc.Register(ctx, testDevice("dev-01")))

	time.Sleep(100 * time.Millisecond)
	svc.Stop(ctx)

	is.True(stub.polls.Load() > 0)

	is.Equal(1, len(r.SetTagCalls()))
	is.Equal("dev-01.temperature", r.SetTagCalls()[0].Tag.ID)

	topics := map[string]bool{}
	for _, call := range m.PublishOnTopicCalls() {
		topics[call.Message.TopicName()] = true
	}
	is.True(topics["devices.tagValueChanged"])
	is.True(topics["devices.valuesReported"])
	is.True(topics["devices.statusChanged"])
}

func TestConnectFailureSkipsScheduling(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	stub := &pollerStub{
		connect: func() error { return errors.New("connection refused") },
	}

	svc, created := setupSupervisor(testRepository(), testMessenger(), stub)

	is.NoErr(svc.Register(ctx, testDevice("dev-01")))
	time.Sleep(100 * time.Millisecond)

	is.Equal(int32(0), stub.polls.Load())

	// the runner slot was released so an external re-registration
	// can try again
	is.NoErr(svc.Register(ctx, testDevice("dev-01")))
	is.Equal(int32(2), created.Load())

	svc.Stop(ctx)
}

func TestRegisterIgnoresDisabledDevices(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	svc, created := setupSupervisor(testRepository(), testMessenger(), &pollerStub{})

	device := testDevice("dev-01")
	device.Enabled = false

	is.NoErr(svc.Register(ctx, device))
	is.Equal(int32(0), created.Load())
}

func TestRegisterIgnoresUnsupportedDeviceTypes(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	svc, created := setupSupervisor(testRepository(), testMessenger(), &pollerStub{})

	device := testDevice("dev-01")
	device.Type = "MQTTclient"

	is.NoErr(svc.Register(ctx, device))
	is.Equal(int32(0), created.Load())
}

func TestRegisterIsIdempotent(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	svc, created := setupSupervisor(testRepository(), testMessenger(), &pollerStub{})
	defer svc.Stop(ctx)

	device := testDevice("dev-01")
	is.NoErr(svc.Register(ctx, device))
	is.NoErr(svc.Register(ctx, device))
	is.Equal(int32(1), created.Load())
}

func TestUnregisterStopsPolling(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	stub := &pollerStub{}
	svc, _ := setupSupervisor(testRepository(), testMessenger(), stub)

	is.NoErr(svc.Register(ctx, testDevice("dev-01")))
	time.Sleep(50 * time.Millisecond)

	is.NoErr(svc.Unregister(ctx, "dev-01"))
	count := stub.polls.Load()

	time.Sleep(50 * time.Millisecond)
	is.Equal(count, stub.polls.Load())
}

func TestUnregisterUnknownDeviceIsANoOp(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	svc, _ := setupSupervisor(testRepository(), testMessenger(), &pollerStub{})

	is.NoErr(svc.Unregister(ctx, "nosuchdevice"))
}

func TestReconfigureRestartsOnPollingChange(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	svc, created := setupSupervisor(testRepository(), testMessenger(), &pollerStub{})
	defer svc.Stop(ctx)

	device := testDevice("dev-01")
	is.NoErr(svc.Register(ctx, device))

	device.PollingMs = 20
	is.NoErr(svc.Reconfigure(ctx, device))
	is.Equal(int32(2), created.Load())
}

func TestReconfigureKeepsRunnerOnCosmeticChange(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	svc, created := setupSupervisor(testRepository(), testMessenger(), &pollerStub{})
	defer svc.Stop(ctx)

	device := testDevice("dev-01")
	is.NoErr(svc.Register(ctx, device))

	device.Name = "renamed"
	is.NoErr(svc.Reconfigure(ctx, device))
	is.Equal(int32(1), created.Load())
}

func TestReconfigureDisablingStopsDevice(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	stub := &pollerStub{}
	svc, _ := setupSupervisor(testRepository(), testMessenger(), stub)

	device := testDevice("dev-01")
	is.NoErr(svc.Register(ctx, device))

	device.Enabled = false
	is.NoErr(svc.Reconfigure(ctx, device))

	count := stub.polls.Load()
	time.Sleep(50 * time.Millisecond)
	is.Equal(count, stub.polls.Load())
}

func TestStartLoadsEnabledDevices(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	r := testRepository()
	r.GetDevicesFunc = func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.DeviceConfig], error) {
		return types.Collection[types.DeviceConfig]{
			Data:  []types.DeviceConfig{testDevice("dev-01"), testDevice("dev-02")},
			Count: 2,
		}, nil
	}
	m := testMessenger()

	svc, created := setupSupervisor(r, m, &pollerStub{})

	is.NoErr(svc.Start(ctx))
	defer svc.Stop(ctx)

	is.Equal(int32(2), created.Load())
	is.Equal(3, len(m.RegisterTopicMessageHandlerCalls()))
}

func TestSetValueRequiresRegisteredDevice(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()

	written := map[string]string{}
	stub := &pollerStub{
		setValue: func(tagID, value string) error {
			written[tagID] = value
			return nil
		},
	}

	svc, _ := setupSupervisor(testRepository(), testMessenger(), stub)
	defer svc.Stop(ctx)

	err := svc.SetValue(ctx, "dev-01", "pump.enabled", "true")
	is.True(errors.Is(err, ErrDeviceNotRegistered))

	is.NoErr(svc.Register(ctx, testDevice("dev-01")))
	is.NoErr(svc.SetValue(ctx, "dev-01", "pump.enabled", "true"))
	is.Equal(written["pump.enabled"], "true")
}
