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

// WasCalled reports whether site was invoked at least once, with any arguments
func (d *Double) WasCalled(site CallSite) bool {
	return d.Calls(site).Met(AtLeast(1))
}

// WasCalledTimes reports whether site was invoked exactly times times, with any arguments
func (d *Double) WasCalledTimes(site CallSite, times int) bool {
	return d.Calls(site).Met(Exactly(times))
}

/*
WasCalledWith reports whether exactly one invocation of site has one argument per
verifier, each verifying in position.

Repeated matching calls do not satisfy WasCalledWith, use WasCalledWithTimes or
WasCalledTimes when more than one call is expected.
*/
func (d *Double) WasCalledWith(site CallSite, verifiers ...Verifier) bool {
	return d.WasCalledWithTimes(site, 1, verifiers...)
}

// WasCalledWithTimes reports whether exactly times invocations of site match verifiers as per WasCalledWith
func (d *Double) WasCalledWithTimes(site CallSite, times int, verifiers ...Verifier) bool {
	return d.Calls(site).Matching(verifiers...).Met(Exactly(times))
}

// InOrder reports whether each non-empty set of calls happened entirely after the
// preceding non-empty sets. Sets may come from different doubles.
func InOrder(calls ...Calls) bool {
	var last uint64
	for _, c := range calls {
		recorded := c.invocations()
		if len(recorded) == 0 {
			continue
		}
		if recorded[0].tick <= last {
			return false
		}
		last = recorded[len(recorded)-1].tick
	}
	return true
}
