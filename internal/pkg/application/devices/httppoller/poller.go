package httppoller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/RaniaNeuss/FM-Backend/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("fm-backend/httppoller")

var (
	ErrConnection = errors.New("device address unreachable or misconfigured")
	ErrPoll       = errors.New("poll request failed")
	ErrParse      = errors.New("could not parse poll response")
	ErrBusy       = errors.New("previous poll still in progress")
)

type cachedValue struct {
	value     string
	timestamp time.Time
}

// Snapshot is the outcome of one successful poll: the full flattened
// state with per-key changed flags, and the changed subset.
type Snapshot struct {
	Values  map[string]types.ReportedValue
	Changed map[string]types.TagValue
	At      time.Time
}

// Poller fetches a device's remote endpoint and diffs the flattened
// response against the last known values. The value cache is owned
// exclusively by this poller.
type Poller struct {
	device types.DeviceConfig
	client http.Client

	mu       sync.Mutex
	working  bool
	overload int
	status   string
	cache    map[string]cachedValue
}

func New(device types.DeviceConfig) *Poller {
	return &Poller{
		device: device,
		client: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		status: types.ConnectOff,
		cache:  map[string]cachedValue{},
	}
}

// Status returns the last connection status, one of the connect-*
// values in pkg/types.
func (p *Poller) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// Connect issues one validation request to the configured address.
// Any response with a 2xx status counts as reachable.
func (p *Poller) Connect(ctx context.Context) error {
	var err error
	ctx, span := tracer.Start(ctx, "connect")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	if p.device.Property.Address == "" {
		p.setStatus(types.ConnectFailed)
		err = fmt.Errorf("%w: device %s has no address", ErrConnection, p.device.ID)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.device.Property.Address, nil)
	if err != nil {
		p.setStatus(types.ConnectFailed)
		err = fmt.Errorf("%w: %s", ErrConnection, err.Error())
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.setStatus(types.ConnectFailed)
		err = fmt.Errorf("%w: %s", ErrConnection, err.Error())
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		p.setStatus(types.ConnectFailed)
		err = fmt.Errorf("%w: unexpected status code %d", ErrConnection, resp.StatusCode)
		return err
	}

	p.setStatus(types.ConnectOK)
	return nil
}

// Poll fetches the device endpoint, flattens the response and returns
// the full snapshot together with the changed subset. The cache is only
// updated on success; three consecutive failures flip the connection
// status to connect-error.
func (p *Poller) Poll(ctx context.Context) (Snapshot, error) {
	var err error
	ctx, span := tracer.Start(ctx, "poll")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)

	if !p.checkWorking(true) {
		err = ErrBusy
		return Snapshot{}, err
	}
	defer p.checkWorking(false)

	body, err := p.readRequest(ctx)
	if err != nil {
		p.registerFailure()
		return Snapshot{}, err
	}

	var data any
	err = json.Unmarshal(body, &data)
	if err != nil {
		p.registerFailure()
		log.Error("could not parse response body", "device_id", p.device.ID, "err", err.Error())
		err = fmt.Errorf("%w: %s", ErrParse, err.Error())
		return Snapshot{}, err
	}

	snapshot := p.updateValues(Flatten(data))
	p.mu.Lock()
	p.overload = 0
	p.status = types.ConnectOK
	p.mu.Unlock()

	return snapshot, nil
}

func (p *Poller) readRequest(ctx context.Context) ([]byte, error) {
	method := p.device.Property.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, p.device.Property.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPoll, err.Error())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPoll, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrPoll, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPoll, err.Error())
	}

	return body, nil
}

func (p *Poller) updateValues(flat map[string]string) Snapshot {
	now := time.Now().UTC()

	p.mu.Lock()
	defer p.mu.Unlock()

	values := make(map[string]types.ReportedValue, len(flat))
	changed := map[string]types.TagValue{}

	for key, newValue := range flat {
		old, known := p.cache[key]

		if known && old.value == newValue {
			values[key] = types.ReportedValue{
				Value:     newValue,
				Timestamp: old.timestamp,
				Changed:   false,
			}
			continue
		}

		p.cache[key] = cachedValue{value: newValue, timestamp: now}
		values[key] = types.ReportedValue{
			Value:     newValue,
			Timestamp: now,
			Changed:   true,
		}
		changed[key] = types.TagValue{
			ID:        key,
			Value:     newValue,
			UpdatedAt: now,
		}
	}

	return Snapshot{Values: values, Changed: changed, At: now}
}

// SetValue posts a single tag value back to the device endpoint, used
// by action alarms.
func (p *Poller) SetValue(ctx context.Context, tagID, value string) error {
	var err error
	ctx, span := tracer.Start(ctx, "set-value")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	payload, err := json.Marshal([]map[string]any{{"id": tagID, "value": typedValue(value)}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.device.Property.Address, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrPoll, err.Error())
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf("%w: unexpected status code %d", ErrPoll, resp.StatusCode)
		return err
	}

	return nil
}

// typedValue converts a string back into the JSON type the device
// reported it with, so writes round-trip as numbers and booleans.
func typedValue(value string) any {
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func (p *Poller) setStatus(status string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

func (p *Poller) registerFailure() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.overload++
	if p.overload >= 3 {
		p.status = types.ConnectError
	}
}

// checkWorking guards against overlapping polls for the same device. A
// slow poll extends the effective interval rather than stacking.
func (p *Poller) checkWorking(working bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if working && p.working {
		p.status = types.ConnectBusy
		return false
	}

	p.working = working
	return true
}
