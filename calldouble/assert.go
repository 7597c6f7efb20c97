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
	"strings"

	"github.com/stretchr/testify/assert"
)

// failed logs msg and, with a t, reports it as a test failure. Always false.
func (d *Double) failed(t T, msg string) bool {
	logger := d.logger()
	logger.Warn().Str("double", d.String()).Msg(msg)
	if t == nil {
		return false
	}
	t.Helper()
	return assert.Fail(t, msg)
}

// describe lists the recorded calls, for failure messages
func describe(d *Double, calls Invocations) string {
	if calls.Len() == 0 {
		return "  (no calls)"
	}
	sb := strings.Builder{}
	for i := 0; i < calls.Len(); i++ {
		inv := calls.At(i)
		if i > 0 {
			sb.WriteRune('\n')
		}
		fmt.Fprintf(&sb, "  #%d %s%v", inv.Seq, d.iface.Name(inv.Site), inv.Args)
	}
	return sb.String()
}

//AssertCalledTimes fails t unless site was called exactly times times
func AssertCalledTimes(t T, d *Double, site CallSite, times int) bool {
	t.Helper()
	if d.WasCalledTimes(site, times) {
		return true
	}
	return d.failed(t, fmt.Sprintf("%s expected exactly %d calls, found:\n%s", d.iface.Name(site), times, describe(d, d.Calls(site))))
}

//AssertCalledWith fails t unless WasCalledWith(site, verifiers...)
func AssertCalledWith(t T, d *Double, site CallSite, verifiers ...Verifier) bool {
	t.Helper()
	if d.WasCalledWith(site, verifiers...) {
		return true
	}
	return d.failed(t, fmt.Sprintf("%s expected exactly one call matching %v, found:\n%s",
		d.iface.Name(site), Args(verifiers...), describe(d, d.Calls(site))))
}

//AssertInOrder fails t unless InOrder(calls...)
func AssertInOrder(t T, calls ...Calls) bool {
	t.Helper()
	if InOrder(calls...) {
		return true
	}
	descriptions := make([]string, len(calls))
	for i, c := range calls {
		descriptions[i] = fmt.Sprint(c)
	}
	return assert.Fail(t, "calls out of order:\n"+strings.Join(descriptions, "\nthen\n"))
}
