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
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Settings are process wide defaults for every Double, read from the environment.
//
//	CALLDOUBLE_TRACE=true go test ./...
type Settings struct {
	// Trace logs every invocation on every double, as if EnableTrace() was called
	Trace bool `env:"CALLDOUBLE_TRACE" envDefault:"false"`

	// LogLevel is the zerolog level name used for trace output
	LogLevel string `env:"CALLDOUBLE_LOG_LEVEL" envDefault:"debug"`
}

// Level parses LogLevel, falling back to debug
func (s Settings) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil || s.LogLevel == "" {
		return zerolog.DebugLevel
	}
	return level
}

var (
	envSettingsOnce sync.Once
	envSettings     Settings
	envSettingsErr  error
)

// LoadSettings parses Settings from the environment.
// The environment is only read once per process.
func LoadSettings() (Settings, error) {
	envSettingsOnce.Do(func() {
		envSettings, envSettingsErr = parseSettings()
	})
	return envSettings, envSettingsErr
}

func parseSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, errors.Wrap(err, "parse calldouble settings")
	}
	return s, nil
}
