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
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// LogFieldFormatter decorates every entry with a fixed set of fields.
type LogFieldFormatter struct {
	log.Formatter
	Fields log.Fields
}

// Format implements logrus.Formatter.
func (f LogFieldFormatter) Format(entry *log.Entry) ([]byte, error) {
	data := make(log.Fields, len(entry.Data)+len(f.Fields))
	for k, v := range f.Fields {
		data[k] = v
	}
	for k, v := range entry.Data {
		data[k] = v
	}
	decorated := *entry
	decorated.Data = data
	return f.Formatter.Format(&decorated)
}

// Config controls how the standard logger is set up.
type Config struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Setup configures the standard logrus logger and returns the parsed level.
func Setup(cfg Config, fields log.Fields) (log.Level, error) {
	level := log.InfoLevel
	if cfg.Level != "" {
		l, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return level, errors.Wrapf(err, "invalid log level %q", cfg.Level)
		}
		level = l
	}

	var formatter log.Formatter = &log.TextFormatter{FullTimestamp: true}
	if cfg.JSON {
		formatter = &log.JSONFormatter{}
	}
	if len(fields) > 0 {
		formatter = LogFieldFormatter{Formatter: formatter, Fields: fields}
	}
	log.SetFormatter(formatter)
	log.SetLevel(level)
	return level, nil
}
