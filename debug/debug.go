// Package debug provides environment controlled debug logging.
//
// Each switch is read once at startup from a HAARPREP_DEBUG_* variable
// holding a value accepted by strconv.ParseBool.
package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
)

type debug struct {
	Pipeline bool
	Coerce   bool
	Remap    bool
	Assemble bool
}

var d *debug

func init() {
	d = &debug{}
	d.Pipeline = boolEnv("HAARPREP_DEBUG_PIPELINE")
	d.Coerce = boolEnv("HAARPREP_DEBUG_COERCE")
	d.Remap = boolEnv("HAARPREP_DEBUG_REMAP")
	d.Assemble = boolEnv("HAARPREP_DEBUG_ASSEMBLE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Pipeline() bool {
	return d.Pipeline
}
func Coerce() bool {
	return d.Coerce
}
func Remap() bool {
	return d.Remap
}
func Assemble() bool {
	return d.Assemble
}

var (
	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

// SetOutput redirects debug output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

type JSON struct{ V any }

func (j JSON) String() string {
	data, err := json.MarshalIndent(j.V, "   |", "  ")
	if err != nil {
		return fmt.Sprintf("%v", j.V)
	}
	return string(data)
}

func Logf(msg string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, msg, args...)
}
