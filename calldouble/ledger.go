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

import "sync/atomic"

var tick uint64 //global atomic counter to order calls across doubles

// Invocation is the immutable record of one call made to a double
type Invocation struct {
	Site CallSite
	Args []interface{}
	// Seq orders this invocation relative to every other invocation on the same double
	Seq uint64

	tick uint64
}

// Invocations is an ordered, read-only collection of recorded calls.
type Invocations interface {
	Len() int
	At(i int) Invocation
}

type invocationList []Invocation

func (l invocationList) Len() int {
	return len(l)
}

// At returns a copy so callers can never mutate the recorded arguments
func (l invocationList) At(i int) Invocation {
	inv := l[i]
	inv.Args = copyArgs(inv.Args)
	return inv
}

func copyArgs(args []interface{}) []interface{} {
	if args == nil {
		return nil
	}
	result := make([]interface{}, len(args))
	copy(result, args)
	return result
}

/*
Ledger is the append-only log of calls made to one double.

Entries are numbered from 1 in the order they are recorded and are never reordered
or removed, except by Reset which clears the log and restarts numbering.

A Ledger does no locking of its own, the owning Double serialises access to it.
*/
type Ledger struct {
	entries invocationList
	last    uint64
}

// Record appends an invocation and returns its sequence number
func (l *Ledger) Record(site CallSite, args []interface{}) uint64 {
	l.last++
	l.entries = append(l.entries, Invocation{
		Site: site,
		Args: copyArgs(args),
		Seq:  l.last,
		tick: atomic.AddUint64(&tick, 1),
	})
	return l.last
}

// EntriesFor returns the invocations of site, in recorded order
func (l *Ledger) EntriesFor(site CallSite) Invocations {
	var subset invocationList
	for _, inv := range l.entries {
		if inv.Site == site {
			subset = append(subset, inv)
		}
	}
	return subset
}

// All returns every invocation, in recorded order
func (l *Ledger) All() Invocations {
	result := make(invocationList, len(l.entries))
	copy(result, l.entries)
	return result
}

// Reset clears the ledger. Only for use between independent test cases.
func (l *Ledger) Reset() {
	l.entries = nil
	l.last = 0
}
