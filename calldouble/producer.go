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
	"sync"
)

// Producer generates an override value each time a matching call is made.
//
// A Producer registered as an override value is invoked with the call's arguments
// instead of being returned itself. Producers run outside the double's lock, so they
// may call back into the double.
type Producer interface {
	Produce(args []interface{}) interface{}
}

// ProducerFunc adapts a function to a Producer
type ProducerFunc func(args []interface{}) interface{}

func (f ProducerFunc) Produce(args []interface{}) interface{} {
	return f(args)
}

func (f ProducerFunc) String() string {
	return "ProducerFunc"
}

// Computed is a typed ProducerFunc for single argument call-sites.
// An argument that is not an A produces the zero R. A nil argument is passed as the
// zero A when A can hold nil, as for Custom.
func Computed[A any, R any](f func(A) R) Producer {
	return ProducerFunc(func(args []interface{}) interface{} {
		var zero R
		if len(args) != 1 {
			return zero
		}
		a, ok := argAs[A](args[0])
		if !ok {
			return zero
		}
		return f(a)
	})
}

type sequence struct {
	mutex  sync.Mutex
	values []interface{}
	next   int
}

// Produce returns successive values, repeating the last one when exhausted
func (s *sequence) Produce(_ []interface{}) interface{} {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.values) == 0 {
		return nil
	}
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return v
}

func (s *sequence) String() string {
	return fmt.Sprintf("Sequence%v", s.values)
}

// Sequence returns each of values in turn for successive calls, then keeps returning the last.
// Values that are themselves Producers are returned as is, not invoked.
func Sequence(values ...interface{}) Producer {
	return &sequence{values: values}
}
