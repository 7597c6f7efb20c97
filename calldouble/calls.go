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
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Calls is a snapshot of recorded invocations that can be narrowed and verified.
// Calls made after the snapshot was taken are not included.
type Calls interface {
	Invocations

	// Matching returns the subset of calls whose arguments satisfy verifiers, position by position.
	// The argument count must equal the number of verifiers.
	Matching(verifiers ...Verifier) Calls

	// MatchingArgs returns the subset of calls whose arguments satisfy matcher
	MatchingArgs(matcher ArgsMatcher) Calls

	/*
		Slice returns a subset of these calls, including call at index from, excluding call at index to (like go slice)

		If necessary use Len() to reference calls from the end of the slice.
		eg to get the last 3 calls - c.Slice(c.Len()-3, c.Len())
	*/
	Slice(from int, to int) Calls

	// After returns the subset of these calls that were invoked after all of other, which may be from another double
	After(other Calls) Calls

	// Met reports whether the number of calls satisfies expect
	Met(expect Expectation) bool

	// Expect reports a failure to t unless the number of calls satisfies expect
	Expect(t T, expect Expectation) bool

	invocations() invocationList
	nested() []string
}

type callSet struct {
	double   *Double
	recorded invocationList
	subsets  []string
}

// Calls snapshots the recorded calls to site
func (d *Double) Calls(site CallSite) Calls {
	if d.t != nil {
		d.t.Helper()
	}
	if !d.checkSite(site) {
		return d.newCallSet(nil, fmt.Sprintf("no calls to undeclared call-site %d of %v", site, d.iface))
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.newCallSet(d.ledger.EntriesFor(site).(invocationList), fmt.Sprintf("all calls to %s", d.iface.Name(site)))
}

// AllCalls snapshots every recorded call to d
func (d *Double) AllCalls() Calls {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.newCallSet(d.ledger.All().(invocationList), fmt.Sprintf("all calls to %v", d))
}

func (d *Double) newCallSet(calls invocationList, subsets ...string) *callSet {
	return &callSet{double: d, recorded: calls, subsets: subsets}
}

func (c *callSet) invocations() invocationList {
	return c.recorded
}

func (c *callSet) nested() []string {
	return c.subsets
}

func (c *callSet) Len() int {
	return len(c.recorded)
}

func (c *callSet) At(i int) Invocation {
	return c.recorded.At(i)
}

func (c *callSet) String() string {
	//calls after
	//  ">>"
	//    calls matching(matcher) within
	//      all calls to <<Other method>>
	//  "<<"
	//  within
	//    all calls to <<this method>>
	var rewinds = make([]int, 0)
	depth := 0
	sb := strings.Builder{}
	for i := 0; i < len(c.subsets); i++ {
		if c.subsets[i] == ">>" {
			rewinds = append([]int{depth}, rewinds...)
		} else if c.subsets[i] == "<<" {
			depth = rewinds[0]
			rewinds = rewinds[1:]
		} else {
			if i > 0 {
				sb.WriteRune('\n')
			}
			for d := 0; d < depth; d++ {
				sb.WriteString("  ")
			}
			sb.WriteString(c.subsets[i])
			depth++
		}
	}
	return sb.String()
}

func (c *callSet) Matching(verifiers ...Verifier) Calls {
	return c.MatchingArgs(Args(verifiers...))
}

func (c *callSet) MatchingArgs(matcher ArgsMatcher) Calls {
	var subset invocationList
	for _, inv := range c.recorded {
		if matcher.MatchArgs(copyArgs(inv.Args)) {
			subset = append(subset, inv)
		}
	}
	return c.newSubset(subset, fmt.Sprintf("calls matching %v within", matcher))
}

func (c *callSet) Slice(from int, to int) Calls {
	l := len(c.recorded)
	var subset invocationList
	var sliceDesc string
	if from < 0 || to < 0 || from > to {
		c.double.fatal(errors.Errorf("invalid slice [%d:%d] of %v", from, to, c))
		return c.newSubset(nil, fmt.Sprintf("invalid slice [%d:%d] of", from, to))
	}
	if from > l {
		sliceDesc = fmt.Sprintf("[%d>=len():]", from)
	} else if to > l {
		sliceDesc = fmt.Sprintf("[%d:]", from)
		subset = c.recorded[from:]
	} else {
		sliceDesc = fmt.Sprintf("[%d:%d]", from, to)
		subset = c.recorded[from:to]
	}
	return c.newSubset(subset, fmt.Sprintf("slice%s of", sliceDesc))
}

func (c *callSet) After(other Calls) Calls {
	recorded := other.invocations()

	var subset invocationList
	if len(recorded) > 0 {
		lastTick := recorded[len(recorded)-1].tick
		partition := sort.Search(len(c.recorded), func(i int) bool { return c.recorded[i].tick > lastTick })
		subset = c.recorded[partition:]
	} else {
		// all our calls are considered to be after an empty set
		subset = c.recorded
	}

	nested := []string{"calls after", ">>"}
	nested = append(nested, other.nested()...)
	nested = append(nested, "<<", "within")
	return c.newSubset(subset, nested...)
}

func (c *callSet) Met(expect Expectation) bool {
	return expect.Met(len(c.recorded))
}

func (c *callSet) Expect(t T, expect Expectation) bool {
	t.Helper()
	count := len(c.recorded)
	if expect.Met(count) {
		return true
	}
	return c.double.failed(t, fmt.Sprintf("%v\nexpected %v, found %d calls", c, expect, count))
}

func (c *callSet) newSubset(calls invocationList, desc ...string) *callSet {
	subsets := append(desc, c.subsets...)
	return c.double.newCallSet(calls, subsets...)
}
