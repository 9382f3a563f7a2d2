package logging

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"
	"gopkg.in/Graylog2/go-gelf.v2/gelf"
)

const gelfScheme = "gelf"

var (
	gelfSinkWrapper = &gelfSink{}
	registerOnce    sync.Once
	registerErr     error
)

type gelfSink struct {
	sync.RWMutex
	gelfWriter gelf.Writer

	version string
	host    string
}

func (gs *gelfSink) Write(b []byte) (int, error) {
	gs.RLock()
	defer gs.RUnlock()
	if gs.gelfWriter == nil {
		return 0, fmt.Errorf("gelfWriter is nil")
	}

	msg := gelf.Message{
		Version:  "1.1",
		Host:     gs.host,
		Short:    string(b),
		TimeUnix: float64(time.Now().UnixNano()) / float64(time.Second),
		Level:    0,
		Extra:    map[string]interface{}{"_pasteVersion": gs.version},
	}

	go func(w gelf.Writer) {
		// never wait for the network when printing logs
		if err := w.WriteMessage(&msg); err != nil {
			fmt.Printf("failed to write to gelf: %s\n", err.Error())
		}
	}(gs.gelfWriter)

	return len(b), nil
}

func (gs *gelfSink) Close() error {
	gs.RLock()
	defer gs.RUnlock()
	if gs.gelfWriter == nil {
		return nil
	}
	return gs.gelfWriter.Close()
}

func (gs *gelfSink) Sync() error {
	return nil
}

func (gs *gelfSink) SetHost(host string) {
	gs.Lock()
	defer gs.Unlock()
	gs.host = host
}

func (gs *gelfSink) SetVersion(version string) {
	gs.Lock()
	defer gs.Unlock()
	gs.version = version
}

func (gs *gelfSink) setWriter(w gelf.Writer) {
	gs.Lock()
	defer gs.Unlock()
	gs.gelfWriter = w
}

// SetupGelf mirrors all log output to a Graylog UDP input at addr.
func SetupGelf(addr string) error {
	w, err := gelf.NewUDPWriter(addr)
	if err != nil {
		return fmt.Errorf("gelf writer: %w", err)
	}
	gelfSinkWrapper.setWriter(w)

	registerOnce.Do(func() {
		registerErr = zap.RegisterSink(gelfScheme, func(*url.URL) (zap.Sink, error) {
			return gelfSinkWrapper, nil
		})
	})
	if registerErr != nil {
		return fmt.Errorf("register gelf sink: %w", registerErr)
	}

	cfg := defaultCfg
	cfg.Format = logging.JSONOutput
	cfg.URL = gelfScheme + "://" + addr
	logging.SetupLogging(cfg)
	setSubsystemLevels()
	return nil
}

func SetVersion(version string) {
	gelfSinkWrapper.SetVersion(version)
}

func SetHost(host string) {
	gelfSinkWrapper.SetHost(host)
}
