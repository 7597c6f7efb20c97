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
	"fmt"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

//T is compatible with builtin testing.T
type T interface {
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
	Helper()
}

/*
A Double is the runtime embedded by every hand-written or generated test double.

Setup phase

Register return values with Override (or OverrideWhen), and up-front expectations with Expect.

Exercise phase

Each interface method of the double funnels through Invoke (or the typed Result), which
records the call and returns the most recently registered matching override, or the
method's default.

Verify phase

Query recorded calls with WasCalled, WasCalledTimes, WasCalledWith or Calls, and
check registered expectations with Verify.

A Double is safe for concurrent use. Each Double owns its lock, ledger and registry.
*/
type Double struct {
	iface    *Interface
	mutex    sync.Mutex
	ledger   Ledger
	stubs    Registry
	expected []*expectedCalls

	t        T
	log      zerolog.Logger
	settings *Settings
	trace    bool
}

// Option configures a Double during New
type Option func(*Double)

// WithT attaches the test so configuration errors fail it fatally and trace output goes to T.Logf
func WithT(t T) Option {
	return func(d *Double) {
		d.t = t
	}
}

// WithLogger replaces the default no-op logger
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Double) {
		d.log = logger
	}
}

// WithSettings uses s instead of the settings read from the environment
func WithSettings(s Settings) Option {
	return func(d *Double) {
		d.settings = &s
	}
}

/*
New constructs a Double for the call-sites declared by iface, with an empty ledger and registry.

A nil iface, or unparsable environment settings, is a configuration error.
*/
func New(iface *Interface, options ...Option) *Double {
	d := &Double{iface: iface, log: zerolog.Nop()}
	for _, option := range options {
		option(d)
	}

	if iface == nil {
		d.fatal(ErrNilInterface)
		return d
	}

	if d.settings == nil {
		settings, err := LoadSettings()
		if err != nil {
			d.fatal(err)
			settings = Settings{}
		}
		d.settings = &settings
	}
	if d.settings.Trace {
		d.EnableTrace()
	}

	return d
}

// EnableTrace logs every invocation. Without WithLogger, output goes to T.Logf (or stderr).
func (d *Double) EnableTrace() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.log.GetLevel() == zerolog.Disabled {
		level := zerolog.DebugLevel
		if d.settings != nil {
			level = d.settings.Level()
		}
		d.log = newTraceLogger(d.t, level)
	}
	d.trace = true
}

func (d *Double) String() string {
	return fmt.Sprintf("DoubleFor(%v)", d.iface)
}

// T returns the test attached WithT, or nil
func (d *Double) T() T {
	return d.t
}

// Interface returns the call-site declaration this double was built for
func (d *Double) Interface() *Interface {
	return d.iface
}

func (d *Double) logger() zerolog.Logger {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.log
}

// fatal reports a configuration error, through T.Fatalf if attached, otherwise by panicking
func (d *Double) fatal(err error) {
	logger := d.logger()
	logger.Error().Err(err).Str("double", d.String()).Msg("configuration error")
	if d.t != nil {
		d.t.Helper()
		d.t.Fatalf("%v", err)
		return
	}
	panic(err)
}

func (d *Double) checkSite(site CallSite) bool {
	if d.t != nil {
		d.t.Helper()
	}
	if d.iface == nil {
		d.fatal(ErrNilInterface)
		return false
	}
	if err := d.iface.Validate(site); err != nil {
		d.fatal(err)
		return false
	}
	return true
}

/*
Invoke records a call to site with args and returns the override value, or def if
no override matches.

The call is recorded whether or not an override exists. A matching Producer is
invoked after the double's lock is released.
*/
func (d *Double) Invoke(site CallSite, def interface{}, args ...interface{}) interface{} {
	if d.t != nil {
		d.t.Helper()
	}
	if !d.checkSite(site) {
		return def
	}

	stub, seq, trace := d.record(site, args)

	if trace {
		logger := d.logger()
		event := logger.Debug().
			Str("callsite", d.iface.Name(site)).
			Uint64("seq", seq).
			Interface("args", args).
			Bool("overridden", stub != nil)
		if stub != nil {
			event = event.Stringer("stub", stub)
		}
		event.Msg("invoked")
	}

	if stub == nil {
		return def
	}
	return stub.produce(args)
}

func (d *Double) record(site CallSite, args []interface{}) (*stubEntry, uint64, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	seq := d.ledger.Record(site, args)
	return d.stubs.lookup(site, copyArgs(args)), seq, d.trace
}

/*
Result is Invoke for a method with a single result of type R.

	func (c *calculatorDouble) Combine(a, b int) int {
		return calldouble.Result(c.Double, Combine, 0, a, b)
	}

An override value that is not an R is a configuration error. A nil override is
returned as the zero R when R can hold nil.
*/
func Result[R any](d *Double, site CallSite, def R, args ...interface{}) R {
	if d.t != nil {
		d.t.Helper()
	}
	v := d.Invoke(site, def, args...)

	resultType := reflect.TypeOf((*R)(nil)).Elem()
	if v == nil && nillable(resultType) {
		var zero R
		return zero
	}
	r, ok := v.(R)
	if !ok {
		d.fatal(errors.Wrapf(ErrResultType, "%s returns %v, override is %T", d.iface.Name(site), resultType, v))
		return def
	}
	return r
}

// Override returns value for calls to site whose arguments satisfy verifiers, position by position.
// With no verifiers every call to site matches. value may be a Producer.
//
// The most recently registered matching override wins.
func (d *Double) Override(site CallSite, value interface{}, verifiers ...Verifier) {
	if d.t != nil {
		d.t.Helper()
	}
	var matcher ArgsMatcher
	if len(verifiers) > 0 {
		matcher = Args(verifiers...)
	}
	d.OverrideWhen(site, matcher, value)
}

// OverrideWhen returns value for calls to site whose arguments satisfy matcher (nil matches all)
func (d *Double) OverrideWhen(site CallSite, matcher ArgsMatcher, value interface{}) {
	if d.t != nil {
		d.t.Helper()
	}
	if !d.checkSite(site) {
		return
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.stubs.Override(site, value, matcher)
}

// ResetCalls clears recorded calls and restarts sequence numbering.
// Overrides and expectations are kept. Use only between independent test cases.
func (d *Double) ResetCalls() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.ledger.Reset()
}
