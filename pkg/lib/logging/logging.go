package logging

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	logging "github.com/ipfs/go-log/v2"
	"go.uber.org/zap"
)

const (
	levelsEnv        = "ANYTYPE_LOG_LEVEL"
	defaultSubsystem = "anytype-*"
)

var log = Logger("anytype-logger")

var DefaultLogLevel = logging.LevelError

var (
	m            sync.Mutex
	logLevelsStr string
)

var defaultCfg = logging.Config{
	Format: logging.PlaintextOutput,
	Level:  logging.LevelError,
	Stderr: true,
	Stdout: false,
}

type NamedLevel struct {
	Name  string
	Level string
}

func Logger(system string) *Sugared {
	lg := logging.Logger(system)
	return &Sugared{&lg.SugaredLogger}
}

func LoggerNotSugared(system string) *zap.Logger {
	lg := logging.Logger(system)
	return lg.Desugar()
}

// LevelsFromStr parses a string of the form "name1=DEBUG;prefix*=WARN;*=ERROR" into a slice of NamedLevel.
// A bare level applies to all anytype-* subsystems.
func LevelsFromStr(s string) (levels []NamedLevel) {
	for _, kv := range strings.Split(s, ";") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		parts := strings.Split(kv, "=")
		var key, value string
		if len(parts) == 1 {
			key = defaultSubsystem
			value = strings.TrimSpace(parts[0])
		} else if len(parts) == 2 {
			key = strings.TrimSpace(parts[0])
			value = strings.TrimSpace(parts[1])
		} else {
			fmt.Printf("invalid log level format. It should be something like `prefix*=LEVEL;*suffix=LEVEL`, where LEVEL is one of valid log levels\n")
			continue
		}
		if key == "" || value == "" {
			continue
		}

		_, err := zap.ParseAtomicLevel(value)
		if err != nil {
			fmt.Printf("Can't parse log level %s: %s\n", parts[0], err.Error())
			continue
		}
		levels = append(levels, NamedLevel{Name: key, Level: value})
	}
	return levels
}

func ApplyLevels(str string) {
	m.Lock()
	logLevelsStr = str
	m.Unlock()
	setSubsystemLevels()
}

func ApplyLevelsFromEnv() {
	ApplyLevels(os.Getenv(levelsEnv))
}

func setSubsystemLevels() {
	m.Lock()
	defer m.Unlock()
	logLevels := make(map[string]string)
	for _, nl := range LevelsFromStr(logLevelsStr) {
		subsystemPattern, err := glob.Compile(nl.Name)
		if err != nil {
			log.Errorf("failed to parse glob pattern '%s': %v", nl.Name, err)
			continue
		}
		for _, subsystem := range logging.GetSubsystems() {
			if subsystemPattern.Match(subsystem) {
				logLevels[subsystem] = nl.Level
			}
		}
	}

	if len(logLevels) == 0 {
		logging.SetAllLoggers(DefaultLogLevel)
		return
	}

	for subsystem, level := range logLevels {
		err := logging.SetLogLevel(subsystem, level)
		if err != nil && err != logging.ErrNoSuchLogger {
			log.Errorf("subsystem %s has incorrect log level '%s': %v", subsystem, level, err)
		}
	}
}

func init() {
	logging.SetupLogging(defaultCfg)
	ApplyLevelsFromEnv()
}
