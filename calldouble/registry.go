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

type stubEntry struct {
	matcher ArgsMatcher
	value   interface{}
}

func (s *stubEntry) matches(args []interface{}) bool {
	if s.matcher != nil {
		return s.matcher.MatchArgs(args)
	}
	return true
}

func (s *stubEntry) produce(args []interface{}) interface{} {
	if p, isProducer := s.value.(Producer); isProducer {
		return p.Produce(copyArgs(args))
	}
	return s.value
}

func (s *stubEntry) String() string {
	if s.matcher != nil {
		return fmt.Sprintf("returning %v matching %v", s.value, s.matcher)
	}
	return fmt.Sprintf("returning %v", s.value)
}

/*
Registry holds per call-site override values.

Overrides accumulate: registering again for the same call-site adds a candidate
and the most recently registered candidate that matches the arguments wins.
There is no unregister.

Like Ledger, a Registry is serialised by its owning Double.
*/
type Registry struct {
	stubs map[CallSite][]*stubEntry
}

// Override registers value for calls to site whose arguments satisfy matcher.
// A nil matcher matches every call. value may be a Producer.
func (r *Registry) Override(site CallSite, value interface{}, matcher ArgsMatcher) {
	if r.stubs == nil {
		r.stubs = make(map[CallSite][]*stubEntry)
	}
	r.stubs[site] = append(r.stubs[site], &stubEntry{matcher: matcher, value: value})
}

// Resolve returns the override for a call to site with args, or false if there is none
func (r *Registry) Resolve(site CallSite, args []interface{}) (interface{}, bool) {
	if stub := r.lookup(site, args); stub != nil {
		return stub.produce(args), true
	}
	return nil, false
}

func (r *Registry) lookup(site CallSite, args []interface{}) *stubEntry {
	candidates := r.stubs[site]
	for i := len(candidates) - 1; i >= 0; i-- {
		if candidates[i].matches(args) {
			return candidates[i]
		}
	}
	return nil
}
