package logging

import (
	"errors"
	"net"
	"net/url"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/anyproto/anytype-paste/util/text"
)

const payloadPreviewLength = 30

var reLink = regexp.MustCompile(`(?i)\b(?:https?|ftp|file)://[^\s"'<>]+`)

// Sugared masks file paths, urls and host names found in error arguments and
// shortens clipboard payloads.
type Sugared struct {
	*zap.SugaredLogger
}

// Payload is clipboard content passed as a log argument. It is written as a
// short preview with links masked.
type Payload string

func (p Payload) String() string {
	return text.Truncate(reLink.ReplaceAllString(string(p), "<masked url>"), payloadPreviewLength)
}

func (s *Sugared) With(args ...interface{}) *Sugared {
	cleanupArgs(args)
	return &Sugared{s.SugaredLogger.With(args...)}
}

func (s *Sugared) Debugf(template string, args ...interface{}) {
	cleanupArgs(args)
	s.SugaredLogger.Debugf(template, args...)
}

func (s *Sugared) Debugw(msg string, keysAndValues ...interface{}) {
	cleanupArgs(keysAndValues)
	s.SugaredLogger.Debugw(msg, keysAndValues...)
}

func (s *Sugared) Warn(args ...interface{}) {
	cleanupArgs(args)
	s.SugaredLogger.Warn(args...)
}

func (s *Sugared) Warnf(template string, args ...interface{}) {
	cleanupArgs(args)
	s.SugaredLogger.Warnf(template, args...)
}

func (s *Sugared) Warnw(msg string, keysAndValues ...interface{}) {
	cleanupArgs(keysAndValues)
	s.SugaredLogger.Warnw(msg, keysAndValues...)
}

func (s *Sugared) Error(args ...interface{}) {
	cleanupArgs(args)
	s.SugaredLogger.Error(args...)
}

func (s *Sugared) Errorf(template string, args ...interface{}) {
	cleanupArgs(args)
	s.SugaredLogger.Errorf(template, args...)
}

func (s *Sugared) Errorw(msg string, keysAndValues ...interface{}) {
	cleanupArgs(keysAndValues)
	s.SugaredLogger.Errorw(msg, keysAndValues...)
}

func cleanupArgs(args []interface{}) {
	for i, arg := range args {
		switch v := arg.(type) {
		case Payload:
			args[i] = v.String()
		case error:
			args[i] = cleanupError(v)
		}
	}
}

func cleanUpCase[T error](result string, originalErr error, proc func(T)) string {
	var wrappedErr T
	if errors.As(originalErr, &wrappedErr) {
		before := wrappedErr.Error()
		proc(wrappedErr)
		result = strings.Replace(result, before, wrappedErr.Error(), 1)
	}
	return result
}

func cleanupError(err error) error {
	if err == nil {
		return nil
	}
	result := err.Error()
	result = cleanUpCase(result, err, func(pathErr *os.PathError) {
		pathErr.Path = "<masked file path>"
	})
	result = cleanUpCase(result, err, func(urlErr *url.Error) {
		urlErr.URL = "<masked url>"
	})
	result = cleanUpCase(result, err, func(dnsErr *net.DNSError) {
		if dnsErr.Name != "" {
			dnsErr.Name = "<masked host name>"
		}
		if dnsErr.Server != "" {
			dnsErr.Server = "<masked dns server>"
		}
	})
	if result == err.Error() {
		return err
	}
	return errors.New(result)
}
