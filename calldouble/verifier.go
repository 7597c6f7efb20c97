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
	"strings"

	"github.com/stretchr/testify/assert"
)

// Verifier decides whether one recorded argument is acceptable.
//
// Verifiers must be pure: they never mutate the argument and never panic.
type Verifier interface {
	Verify(arg interface{}) bool
}

// ArgsMatcher decides whether a complete argument list is acceptable
type ArgsMatcher interface {
	MatchArgs(args []interface{}) bool
}

type verifierFunc struct {
	f       func(arg interface{}) bool
	explain string
}

func (v verifierFunc) Verify(arg interface{}) bool {
	return v.f(arg)
}

func (v verifierFunc) String() string {
	return v.explain
}

func newVerifier(f func(arg interface{}) bool, explanation ...interface{}) Verifier {
	return verifierFunc{f: f, explain: fmt.Sprint(explanation...)}
}

// toVerifier passes Verifiers through, converts untyped nil to IsNil() and anything else to Equals()
func toVerifier(v interface{}) Verifier {
	switch typed := v.(type) {
	case Verifier:
		return typed
	case nil:
		return IsNil()
	default:
		return Equals(v)
	}
}

// Equals verifies an argument is equal to v.
//
// Equality is reflect.DeepEqual, except that []byte values compare by content.
func Equals(v interface{}) Verifier {
	return newVerifier(func(arg interface{}) bool {
		return assert.ObjectsAreEqual(v, arg)
	}, "Equals(", fmt.Sprintf("%#v", v), ")")
}

type nilVerifier struct{}

func (nilVerifier) String() string {
	return "IsNil"
}

func (nilVerifier) Verify(arg interface{}) bool {
	if arg == nil {
		return true
	}
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// IsNil verifies the argument is nil, or a typed nil of a nil-able kind
func IsNil() Verifier {
	return nilVerifier{}
}

// AnyOf verifies the argument equals (as per Equals) one of values. A nil value verifies as IsNil.
func AnyOf(values ...interface{}) Verifier {
	verifiers := make([]Verifier, len(values))
	for i, v := range values {
		verifiers[i] = toVerifier(v)
	}
	return newVerifier(func(arg interface{}) bool {
		for _, v := range verifiers {
			if v.Verify(arg) {
				return true
			}
		}
		return false
	}, verifierList(verifiers).toString("AnyOf", '(', ')'))
}

var anyValue = newVerifier(func(interface{}) bool { return true }, "AnyValue")

// AnyValue accepts every argument
func AnyValue() Verifier {
	return anyValue
}

/*
Custom builds a Verifier from an arbitrary predicate over the argument's type.

An argument that is not an A fails verification rather than panicking, as does a
predicate that panics. A nil argument is passed as the zero A when A can hold nil.

	calldouble.Custom(func(r *Request) bool { return r.Method == "GET" }, "GET request")
*/
func Custom[A any](pred func(A) bool, explanation ...interface{}) Verifier {
	if len(explanation) == 0 {
		explanation = []interface{}{fmt.Sprintf("Custom(%T)", pred)}
	}
	return newVerifier(func(arg interface{}) (verified bool) {
		defer func() {
			if recover() != nil {
				verified = false
			}
		}()

		typed, ok := argAs[A](arg)
		if !ok {
			return false
		}
		return pred(typed)
	}, explanation...)
}

// argAs converts arg to an A. Nil converts to the zero A only when A can hold nil.
func argAs[A any](arg interface{}) (A, bool) {
	var zero A
	if arg == nil {
		return zero, nillable(reflect.TypeOf((*A)(nil)).Elem())
	}
	typed, ok := arg.(A)
	return typed, ok
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return true
	}
	return false
}

type notVerifier struct {
	Verifier
}

func (n notVerifier) String() string {
	return fmt.Sprintf("Not(%v)", n.Verifier)
}

func (n notVerifier) Verify(arg interface{}) bool {
	return !n.Verifier.Verify(arg)
}

// Not negates v
func Not(v Verifier) Verifier {
	return notVerifier{v}
}

type verifierList []Verifier

func (l verifierList) toString(prefix string, lRune rune, rRune rune) string {
	s := strings.Builder{}
	s.WriteString(prefix)
	s.WriteRune(lRune)
	for i, v := range l {
		if i > 0 {
			s.WriteRune(',')
		}
		s.WriteString(fmt.Sprint(v))
	}
	s.WriteRune(rRune)
	return s.String()
}

type andVerifier struct {
	verifierList
}

func (a andVerifier) String() string {
	return a.toString("And", '{', '}')
}

func (a andVerifier) Verify(arg interface{}) bool {
	for _, v := range a.verifierList {
		if !v.Verify(arg) {
			return false
		}
	}
	return true
}

// And verifies if all of verifiers verify (true for no verifiers)
func And(verifiers ...Verifier) Verifier {
	return andVerifier{verifiers}
}

type orVerifier struct {
	verifierList
}

func (o orVerifier) String() string {
	return o.toString("Or", '{', '}')
}

func (o orVerifier) Verify(arg interface{}) bool {
	for _, v := range o.verifierList {
		if v.Verify(arg) {
			return true
		}
	}
	return false
}

// Or verifies if any one of verifiers verify (false for no verifiers)
func Or(verifiers ...Verifier) Verifier {
	return orVerifier{verifiers}
}

type lenVerifier struct {
	Verifier
}

func (l lenVerifier) String() string {
	return fmt.Sprintf("Len(%v)", l.Verifier)
}

func (l lenVerifier) Verify(arg interface{}) bool {
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
		return l.Verifier.Verify(v.Len())
	default:
		return false
	}
}

// Len verifies an Array, Chan, Map, Slice or String argument by its length.
//
// n may be an int or a Verifier of int
//   Len(0)
//   Len(Custom(func(l int) bool { return l <= 10 }))
func Len(n interface{}) Verifier {
	return lenVerifier{toVerifier(n)}
}

//IsA verifies the argument's dynamic type is assignable to t
//
// if t is not already a reflect.Type it will be converted with reflect.TypeOf
// use IsA(reflect.TypeOf((*Iface)(nil)).Elem()) to check for an interface
func IsA(t interface{}) Verifier {
	rt, isType := t.(reflect.Type)
	if !isType {
		rt = reflect.TypeOf(t)
	}
	return newVerifier(func(arg interface{}) bool {
		if arg == nil || rt == nil {
			return false
		}
		return reflect.TypeOf(arg).AssignableTo(rt)
	}, "IsA(", rt, ")")
}

type elementsVerifier struct {
	verifierList
}

func (e elementsVerifier) String() string {
	return e.toString("Elements", '[', ']')
}

// Verify requires a slice or array with at least as many elements as verifiers,
// trailing elements are not checked.
func (e elementsVerifier) Verify(arg interface{}) bool {
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Array, reflect.Slice:
		if v.Len() < len(e.verifierList) {
			return false
		}
		for i, elem := range e.verifierList {
			if !elem.Verify(v.Index(i).Interface()) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Elements verifies the leading elements of a slice or array argument, position by position.
// Useful for the variadic parameter of a method, which doubles record as a single slice argument.
func Elements(verifiers ...Verifier) Verifier {
	return elementsVerifier{verifiers}
}

type argsMatcher struct {
	verifierList
}

func (a argsMatcher) String() string {
	return a.toString("Args", '(', ')')
}

// MatchArgs requires exactly one argument per verifier, each verifying in position
func (a argsMatcher) MatchArgs(args []interface{}) bool {
	if len(args) != len(a.verifierList) {
		return false
	}
	for i, v := range a.verifierList {
		if !v.Verify(args[i]) {
			return false
		}
	}
	return true
}

// Args builds an ArgsMatcher from positional verifiers.
// The argument count must equal the number of verifiers.
func Args(verifiers ...Verifier) ArgsMatcher {
	return argsMatcher{verifiers}
}

type allArgs struct{}

func (allArgs) String() string {
	return "AllArgs"
}

func (allArgs) MatchArgs([]interface{}) bool {
	return true
}

// AllArgs matches any argument list, of any length
func AllArgs() ArgsMatcher {
	return allArgs{}
}

type argsFunc struct {
	f       func(args []interface{}) bool
	explain string
}

func (a argsFunc) MatchArgs(args []interface{}) bool {
	return a.f(args)
}

func (a argsFunc) String() string {
	return a.explain
}

// ArgsFunc adapts a predicate over the whole argument list
func ArgsFunc(f func(args []interface{}) bool, explanation ...interface{}) ArgsMatcher {
	if len(explanation) == 0 {
		return argsFunc{f, "ArgsFunc"}
	}
	return argsFunc{f, fmt.Sprint(explanation...)}
}
