package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogCapture records JSON log lines written through the global logger
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

// Entries returns the decoded entries at level, in write order
func (c *LogCapture) Entries(level zerolog.Level) []map[string]interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []map[string]interface{}
	sc := bufio.NewScanner(bytes.NewReader(c.buf.Bytes()))
	for sc.Scan() {
		var entry map[string]interface{}
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			continue
		}
		if entry[zerolog.LevelFieldName] == level.String() {
			out = append(out, entry)
		}
	}
	return out
}

// CaptureLogs redirects the global logger to a capture at debug level until
// the test ends. Loggers must be obtained after the call.
func CaptureLogs(t *testing.T) *LogCapture {
	t.Helper()

	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	c := &LogCapture{}
	log.Logger = zerolog.New(c)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
	return c
}
