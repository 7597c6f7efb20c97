/*
 * Copyright 2020 grant@lastweekend.com.au
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package calldouble

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// tWriter sends each log line to T.Logf so trace output is attributed to the running test
type tWriter struct {
	t T
}

func (w tWriter) Write(p []byte) (int, error) {
	w.t.Logf("%s", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// newTraceLogger writes human readable lines to t, or to stderr without a T
func newTraceLogger(t T, level zerolog.Level) zerolog.Logger {
	var out io.Writer = os.Stderr
	if t != nil {
		out = tWriter{t}
	}
	console := zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      true,
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
	return zerolog.New(console).Level(level)
}
