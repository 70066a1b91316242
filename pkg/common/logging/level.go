// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

const (
	// LevelOverwrite is the default endpoint for overwrite level handler.
	LevelOverwrite = "/logging-level"

	_level    = "level"
	_duration = "duration"
	_usage    = "usage: GET `/logging-level?level=[info|debug]&duration=<duration>`"
)

// LevelOverwriter temporarily raises the logging level over http and resets
// it once the requested duration expires.
type LevelOverwriter struct {
	clock   clock.Clock
	initial atomic.Int32
	// generation invalidates reset timers armed by earlier requests.
	generation atomic.Int64
}

// NewLevelOverwriter sets initialLevel on the standard logger and returns an
// overwriter that resets to it.
func NewLevelOverwriter(initialLevel log.Level, clk clock.Clock) *LevelOverwriter {
	o := &LevelOverwriter{clock: clk}
	o.initial.Store(int32(initialLevel))
	log.SetLevel(initialLevel)
	return o
}

// LevelOverwriteHandler returns a handler for overwriting the logging level
// for a duration, using the wall clock.
func LevelOverwriteHandler(initialLevel log.Level) http.HandlerFunc {
	return NewLevelOverwriter(initialLevel, clock.New()).ServeHTTP
}

// ServeHTTP implements http.Handler.
func (o *LevelOverwriter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	levelParam, durationParam := values.Get(_level), values.Get(_duration)
	if levelParam == "" || durationParam == "" {
		writeError(w, fmt.Errorf("required params not set: %s,%s", _level, _duration))
		return
	}

	newLevel, err := log.ParseLevel(levelParam)
	if err != nil {
		writeError(w, err)
		return
	}
	if newLevel != log.InfoLevel && newLevel != log.DebugLevel {
		writeError(w, fmt.Errorf("new level %s is not info or debug", levelParam))
		return
	}

	duration, err := time.ParseDuration(durationParam)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"new_level": newLevel,
		"duration":  duration,
	}).Info("Setting log level to new level")
	log.SetLevel(newLevel)

	gen := o.generation.Inc()
	o.clock.AfterFunc(duration, func() {
		if o.generation.Load() != gen {
			return
		}
		level := log.Level(o.initial.Load())
		log.WithField("initial_level", level).Info("Resetting log level after timer")
		log.SetLevel(level)
	})

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Level changed to %s for the next %v.\n", levelParam, duration)
}

func writeError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintln(w, err.Error())
	fmt.Fprintln(w, _usage)
}
