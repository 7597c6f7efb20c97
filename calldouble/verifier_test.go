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
	"regexp"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
)

type tiface interface {
	test()
}

type tstring string

func (tstring) test() {
	panic("Unexpected call to test()")
}

type request struct {
	Method string
	Path   string
}

func TestVerifier(t *testing.T) {
	type test struct {
		name        string
		verifier    Verifier
		verified    []interface{}
		notVerified []interface{}
		re          string
	}

	var nilPtr *int
	var nilMap map[string]int
	ts := tstring("atest")
	startsWithT := func(x string) bool { return regexp.MustCompile("^t").MatchString(x) }

	tests := []test{
		{"Equals", Equals("test"), []interface{}{"test"}, []interface{}{"", 1, nil}, `Equals\("test"\)`},
		{"EqualsDeep", Equals([]int{1, 2}), []interface{}{[]int{1, 2}}, []interface{}{[]int{2, 1}, []int64{1, 2}}, "Equals"},
		{"EqualsBytes", Equals([]byte("abc")), []interface{}{[]byte("abc")}, []interface{}{"abc"}, "Equals"},
		{"EqualsStruct", Equals(request{"GET", "/"}), []interface{}{request{"GET", "/"}}, []interface{}{&request{"GET", "/"}}, "Equals"},
		{"IsNil", IsNil(), []interface{}{nil, nilPtr, nilMap, error(nil)}, []interface{}{0, "", &ts, map[string]int{}}, "IsNil"},
		{"AnyOf", AnyOf(1, 2, 3), []interface{}{1, 3}, []interface{}{0, "1", nil}, `AnyOf\(Equals\(1\),Equals\(2\),Equals\(3\)\)`},
		{"AnyOfNil", AnyOf(nil, 1), []interface{}{nil, nilPtr, nilMap, 1}, []interface{}{0, ""}, `AnyOf\(IsNil,Equals\(1\)\)`},
		{"AnyOfNone", AnyOf(), nil, []interface{}{1, nil}, `AnyOf\(\)`},
		{"AnyValue", AnyValue(), []interface{}{1, "x", nil, nilPtr}, nil, "AnyValue"},
		{"Custom", Custom(startsWithT), []interface{}{"test", "t"}, []interface{}{"", "x", 1, nil}, `Custom\(func\(string\) bool\)`},
		{"CustomExplained", Custom(startsWithT, "startswith 't'"), []interface{}{"tight"}, nil, "startswith 't'"},
		{"CustomStruct", Custom(func(r *request) bool { return r.Method == "GET" }, "GET request"),
			[]interface{}{&request{Method: "GET"}}, []interface{}{request{Method: "GET"}, &request{Method: "PUT"}, nil}, "GET request"},
		{"CustomNilable", Custom(func(e error) bool { return e == nil }), []interface{}{nil}, []interface{}{fmt.Errorf("x")}, "Custom"},
		{"CustomPanics", Custom(func(r *request) bool { return r.Path == "/" }), nil, []interface{}{(*request)(nil)}, "Custom"},
		{"Not", Not(Equals(1)), []interface{}{2, nil}, []interface{}{1}, `Not\(Equals\(1\)\)`},
		{"And", And(Custom(startsWithT), Len(3)), []interface{}{"ttt"}, []interface{}{"test", "xxx"}, `And\{.*,Len\(Equals\(3\)\)\}`},
		{"AndNone", And(), []interface{}{1}, nil, `And\{\}`},
		{"Or", Or(Equals("test"), Len(3)), []interface{}{"test", "xxx"}, []interface{}{"xxxx"}, `Or\{`},
		{"OrNone", Or(), nil, []interface{}{1}, `Or\{\}`},
		{"NotOr", Not(Or(Custom(startsWithT), Len(3))), []interface{}{"xxxx"}, []interface{}{"ttt", "yyy"}, "Not"},
		{"Len", Len(2), []interface{}{"ab", []int{1, 2}, map[int]int{1: 1, 2: 2}, [2]int{}}, []interface{}{"abc", 2, nil}, `Len\(Equals\(2\)\)`},
		{"LenVerifier", Len(Custom(func(l int) bool { return l <= 2 })), []interface{}{"", "ab"}, []interface{}{"abc"}, "Len"},
		{"IsAValue", IsA(ts), []interface{}{ts}, []interface{}{"plainstring", nil}, "IsA"},
		{"IsAIface", IsA(reflect.TypeOf((*tiface)(nil)).Elem()), []interface{}{ts}, []interface{}{"plainstring"}, `IsA\(calldouble.tiface\)`},
		{"Elements", Elements(Equals("a"), AnyValue()), []interface{}{[]string{"a", "b"}, []string{"a", "b", "c"}, [2]string{"a", ""}},
			[]interface{}{[]string{"a"}, []string{"b", "a"}, "ab", nil}, `Elements\[`},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Regexp(t, test.re, fmt.Sprint(test.verifier))
			for _, arg := range test.verified {
				assert.Truef(t, test.verifier.Verify(arg), "expected %v to verify %#v", test.verifier, arg)
			}
			for _, arg := range test.notVerified {
				assert.Falsef(t, test.verifier.Verify(arg), "expected %v not to verify %#v", test.verifier, arg)
			}
		})
	}
}

func TestArgs(t *testing.T) {
	type test struct {
		name        string
		matcher     ArgsMatcher
		matching    [][]interface{}
		notMatching [][]interface{}
	}

	tests := []test{
		{"Positional", Args(Equals(2), Equals(3)), [][]interface{}{{2, 3}}, [][]interface{}{{3, 2}, {2}, {2, 3, 4}}},
		{"NoVerifiers", Args(), [][]interface{}{{}, nil}, [][]interface{}{{1}}},
		{"Variadic", Args(Equals("label"), Elements(Equals(1))), [][]interface{}{{"label", []int{1, 2}}}, [][]interface{}{{"label", []int(nil)}}},
		{"AllArgs", AllArgs(), [][]interface{}{{}, {1, 2, 3}}, nil},
		{"ArgsFunc", ArgsFunc(func(args []interface{}) bool { return len(args)%2 == 0 }), [][]interface{}{{1, 2}}, [][]interface{}{{1}}},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			for _, args := range test.matching {
				assert.Truef(t, test.matcher.MatchArgs(args), "expected %v to match %v", test.matcher, args)
			}
			for _, args := range test.notMatching {
				assert.Falsef(t, test.matcher.MatchArgs(args), "expected %v not to match %v", test.matcher, args)
			}
		})
	}
}

func TestVerifiers_AreTotalAndPure(t *testing.T) {
	verifiers := []Verifier{
		Equals(1), IsNil(), AnyOf("a", 2), AnyValue(), Custom(func(i int) bool { return i > 0 }),
		Not(IsNil()), Len(1), IsA(0), Elements(Equals(1)),
	}

	f := fuzz.New().NilChance(0.2).NumElements(0, 5)
	for i := 0; i < 200; i++ {
		var ints []int
		var s string
		var m map[string]int
		f.Fuzz(&ints)
		f.Fuzz(&s)
		f.Fuzz(&m)
		for _, arg := range []interface{}{ints, s, m, &s} {
			before := fmt.Sprintf("%#v", arg)
			for _, v := range verifiers {
				assert.NotPanics(t, func() { v.Verify(arg) })
			}
			assert.Equal(t, before, fmt.Sprintf("%#v", arg))
		}
	}
}
