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

/*
Package calldouble is a call recording TestDouble core for Go.

A double is a hand-written or generated implementation of an interface that embeds a
*Double and funnels every interface method through Invoke (or the typed Result).
Each call is recorded in the double's ledger and answered by the most recently
registered matching override, or by the default the method supplies.

Declaring call-sites

Every operation of the interface gets a CallSite. Names are only for messages, so
operations that share a name just need different IDs.

 const (
	Combine calldouble.CallSite = iota
	Parse
 )

 var calculatorSites = calldouble.MustDeclare("Calculator",
	calldouble.Site{ID: Combine, Name: "Combine"},
	calldouble.Site{ID: Parse, Name: "Parse"},
 )

 type calculatorDouble struct {
	*calldouble.Double
 }

 func (c calculatorDouble) Combine(a, b int) int {
	return calldouble.Result(c.Double, Combine, 0, a, b)
 }

Stubbing

The remaining examples dot import calldouble, which assists with readability.

Override registers a value (or a Producer of values) for calls whose arguments match.

 d := calculatorDouble{New(calculatorSites, WithT(t))}
 d.Override(Parse, []int{42})
 d.Override(Combine, 99, Equals(1), AnyValue())

Verifying

Recorded calls are queried after exercising the system under test.

 d.WasCalledTimes(Combine, 1)
 d.WasCalledWith(Combine, Equals(2), Equals(3))
 d.Calls(Parse).Matching(Custom(func(s string) bool { return s != "" })).Expect(t, Twice())

WasCalledWith requires exactly one matching call, so an accidental repeat is reported
rather than passing silently.

Mocking

Expect registers an up-front expectation, checked by Verify.

 defer d.Verify()
 d.Expect(Combine, Once())
*/
package calldouble
