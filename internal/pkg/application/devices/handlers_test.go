package devices

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/matryer/is"
)

func TestDeviceCreatedHandlerPersistsAndRegistersDevice(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	log := slog.Default()

	r := testRepository()

	svc := &SupervisorMock{
		RegisterFunc: func(ctx context.Context, device types.DeviceConfig) error {
			return nil
		},
	}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(types.DeviceCreated{
				Device:    testDevice("dev-01"),
				Timestamp: time.Now(),
			})
			return b
		},
	}

	handler := NewDeviceCreatedHandler(r, svc)
	handler(ctx, msg, log)

	is.Equal(1, len(r.CreateOrUpdateDeviceCalls()))
	is.Equal("dev-01", r.CreateOrUpdateDeviceCalls()[0].Device.ID)

	is.Equal(1, len(svc.RegisterCalls()))
	is.Equal("dev-01", svc.RegisterCalls()[0].Device.ID)
}

func TestDeviceUpdatedHandlerPersistsAndReconfiguresDevice(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	log := slog.Default()

	r := testRepository()

	svc := &SupervisorMock{
		ReconfigureFunc: func(ctx context.Context, device types.DeviceConfig) error {
			return nil
		},
	}

	updated := testDevice("dev-01")
	updated.PollingMs = 250

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(types.DeviceUpdated{
				Device:    updated,
				Previous:  testDevice("dev-01"),
				Timestamp: time.Now(),
			})
			return b
		},
	}

	handler := NewDeviceUpdatedHandler(r, svc)
	handler(ctx, msg, log)

	is.Equal(1, len(r.CreateOrUpdateDeviceCalls()))
	is.Equal(250, r.CreateOrUpdateDeviceCalls()[0].Device.PollingMs)

	is.Equal(1, len(svc.ReconfigureCalls()))
	is.Equal(250, svc.ReconfigureCalls()[0].Device.PollingMs)
}

func TestDeviceDeletedHandlerDisablesStoredCopy(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	log := slog.Default()

	r := testRepository()
	r.GetDeviceFunc = func(ctx context.Context, deviceID string) (types.DeviceConfig, error) {
		return testDevice(deviceID), nil
	}

	svc := &SupervisorMock{
		UnregisterFunc: func(ctx context.Context, deviceID string) error {
			return nil
		},
	}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(types.DeviceDeleted{DeviceID: "dev-01", Timestamp: time.Now()})
			return b
		},
	}

	handler := NewDeviceDeletedHandler(r, svc)
	handler(ctx, msg, log)

	// the stored copy stays behind disabled so a restart does not
	// bring the device back
	is.Equal(1, len(r.CreateOrUpdateDeviceCalls()))
	is.True(!r.CreateOrUpdateDeviceCalls()[0].Device.Enabled)

	is.Equal(1, len(svc.UnregisterCalls()))
	is.Equal("dev-01", svc.UnregisterCalls()[0].DeviceID)
}

func TestDeviceDeletedHandlerToleratesUnknownDevice(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	log := slog.Default()

	r := testRepository()

	svc := &SupervisorMock{
		UnregisterFunc: func(ctx context.Context, deviceID string) error {
			return nil
		},
	}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			b, _ := json.Marshal(types.DeviceDeleted{DeviceID: "nosuchdevice", Timestamp: time.Now()})
			return b
		},
	}

	handler := NewDeviceDeletedHandler(r, svc)
	handler(ctx, msg, log)

	is.Equal(0, len(r.CreateOrUpdateDeviceCalls()))
	is.Equal(1, len(svc.UnregisterCalls()))
}

func TestHandlersIgnoreMalformedMessages(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	log := slog.Default()

	r := testRepository()
	svc := &SupervisorMock{}

	msg := &messaging.IncomingTopicMessageMock{
		BodyFunc: func() []byte {
			return []byte(`{`)
		},
	}

	NewDeviceCreatedHandler(r, svc)(ctx, msg, log)
	NewDeviceUpdatedHandler(r, svc)(ctx, msg, log)
	NewDeviceDeletedHandler(r, svc)(ctx, msg, log)

	is.Equal(0, len(r.CreateOrUpdateDeviceCalls()))
	is.Equal(0, len(svc.RegisterCalls()))
	is.Equal(0, len(svc.ReconfigureCalls()))
	is.Equal(0, len(svc.UnregisterCalls()))
}
