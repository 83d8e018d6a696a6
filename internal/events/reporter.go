package events

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/workgraph/internal/ctxlog"
	"github.com/specialistvlad/workgraph/internal/executor"
	"github.com/specialistvlad/workgraph/internal/node"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Event names emitted by the reporter.
const (
	EventNodeState   = "node_state"
	EventRunFinished = "run_finished"
)

// defaultConnectTimeout bounds how long Dial waits for the handshake.
const defaultConnectTimeout = 15 * time.Second

// Options configures the socket.io connection.
type Options struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Reporter publishes run progress.
type Reporter struct {
	emit       func(event string, args ...any)
	disconnect func()
	now        func() time.Time
}

var _ executor.Observer = (*Reporter)(nil)

// Dial connects to the socket.io server and waits for the handshake.
func Dial(ctx context.Context, opts Options) (*Reporter, error) {
	logger := ctxlog.FromContext(ctx).With("url", opts.URL, "namespace", opts.Namespace)
	logger.Info("Connecting progress reporter...")

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid events URL %q: scheme and host are required", opts.URL)
	}

	ioOpts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		ioOpts.SetPath(parsedURL.Path)
	}
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		ioOpts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	ioOpts.SetTransports(types.NewSet(transports.WebSocket))

	namespace := opts.Namespace
	if namespace == "" {
		namespace = "/"
	}

	connectChan := make(chan error, 1)
	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, ioOpts)
	io := manager.Socket(namespace, ioOpts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Progress reporter connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		var err error = fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		logger.Debug("EVENT HANDLER: 'connect_error' event fired", "error", err)
		connectChan <- err
	})

	io.Connect()

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", timeout)
	}

	return newReporter(
		func(event string, args ...any) { io.Emit(event, args...) },
		func() { io.Disconnect() },
	), nil
}

func newReporter(emit func(string, ...any), disconnect func()) *Reporter {
	return &Reporter{emit: emit, disconnect: disconnect, now: time.Now}
}

// NodeStateChanged implements executor.Observer.
func (r *Reporter) NodeStateChanged(_ context.Context, n node.Node, state node.State, err error) {
	payload := map[string]any{
		"id":    n.ID(),
		"kind":  n.Kind().String(),
		"state": state.String(),
		"time":  r.now().UTC().Format(time.RFC3339Nano),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	r.emit(EventNodeState, payload)
}

// Finish reports the outcome of the whole run.
func (r *Reporter) Finish(runErr error) {
	payload := map[string]any{
		"ok":   runErr == nil,
		"time": r.now().UTC().Format(time.RFC3339Nano),
	}
	if runErr != nil {
		payload["error"] = runErr.Error()
	}
	r.emit(EventRunFinished, payload)
}

// Close disconnects from the server.
func (r *Reporter) Close() error {
	if r.disconnect != nil {
		r.disconnect()
	}
	return nil
}
