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

import "fmt"

type expectedCalls struct {
	site    CallSite
	expect  Expectation
	matcher ArgsMatcher
}

/*
Expect registers, during setup, an expectation on the number of calls to site whose
arguments satisfy verifiers (all calls when there are no verifiers).

Expectations are checked by Verify, usually deferred straight after the double is created.

	d := newCalculatorDouble(t)
	defer d.Verify()
	d.Expect(Combine, Once(), Equals(2), AnyValue())
*/
func (d *Double) Expect(site CallSite, expect Expectation, verifiers ...Verifier) {
	if d.t != nil {
		d.t.Helper()
	}
	if !d.checkSite(site) {
		return
	}
	var matcher ArgsMatcher
	if len(verifiers) > 0 {
		matcher = Args(verifiers...)
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.expected = append(d.expected, &expectedCalls{site: site, expect: expect, matcher: matcher})
}

// Verify reports every unmet expectation to the double's T and returns true if all were met.
// Without a T, unmet expectations are only logged.
func (d *Double) Verify() bool {
	if d.t != nil {
		d.t.Helper()
	}
	d.mutex.Lock()
	expected := make([]*expectedCalls, len(d.expected))
	copy(expected, d.expected)
	d.mutex.Unlock()

	met := true
	for _, e := range expected {
		calls := d.Calls(e.site)
		if e.matcher != nil {
			calls = calls.MatchingArgs(e.matcher)
		}
		if d.t != nil {
			met = calls.Expect(d.t, e.expect) && met
		} else if !calls.Met(e.expect) {
			met = d.failed(nil, fmt.Sprintf("%v\nexpected %v, found %d calls", calls, e.expect, calls.Len())) && met
		}
	}
	return met
}

// Verifiable is implemented by Double and by anything embedding one
type Verifiable interface {
	Verify() bool
}

//Verify is shorthand to Verify a set of doubles
func Verify(doubles ...Verifiable) bool {
	met := true
	for _, d := range doubles {
		met = d.Verify() && met
	}
	return met
}
