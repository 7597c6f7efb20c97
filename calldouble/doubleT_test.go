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
	"regexp"

	"github.com/pkg/errors"
)

const (
	tErrorf CallSite = iota
	tFatalf
	tLogf
	tHelper
)

var tSites = MustDeclare("T",
	Site{ID: tErrorf, Name: "Errorf"},
	Site{ID: tFatalf, Name: "Fatalf"},
	Site{ID: tLogf, Name: "Logf"},
	Site{ID: tHelper, Name: "Helper"},
)

// tDouble is a T built with calldouble itself, so failures reported by the framework can be verified
type tDouble struct {
	*Double
}

func newTDouble() *tDouble {
	return &tDouble{New(tSites, WithSettings(Settings{}))}
}

func (t *tDouble) Errorf(format string, args ...interface{}) {
	t.Invoke(tErrorf, nil, format, args)
}

func (t *tDouble) Fatalf(format string, args ...interface{}) {
	t.Invoke(tFatalf, nil, format, args)
}

func (t *tDouble) Logf(format string, args ...interface{}) {
	t.Invoke(tLogf, nil, format, args)
}

func (t *tDouble) Helper() {
	t.Invoke(tHelper, nil)
}

type fatalError string

func (f fatalError) Error() string {
	return string(f)
}

// fatalPanics makes Fatalf stop the caller, as testing.T.Fatalf does
func (t *tDouble) fatalPanics() *tDouble {
	t.Override(tFatalf, ProducerFunc(func(args []interface{}) interface{} {
		panic(fatalError(fmt.Sprintf(args[0].(string), args[1].([]interface{})...)))
	}))
	return t
}

// printfMatcher matches Errorf/Fatalf/Logf calls whose formatted message matches re
func printfMatcher(re string) ArgsMatcher {
	exp := regexp.MustCompile(re)
	return ArgsFunc(func(args []interface{}) bool {
		if len(args) != 2 {
			return false
		}
		format, isString := args[0].(string)
		formatArgs, isSlice := args[1].([]interface{})
		return isString && isSlice && exp.MatchString(fmt.Sprintf(format, formatArgs...))
	}, fmt.Sprintf("/%s/", re))
}

// recovered runs f and returns what it panicked with as an error
func recovered(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, isErr := r.(error); isErr {
				err = e
			} else {
				err = errors.Errorf("%v", r)
			}
		}
	}()
	f()
	return nil
}

type calculator interface {
	Combine(a, b int) int
	Parse(s string) []int
	Summarise(label string, values ...int) string
	Lookup(key *string) error
}

const (
	siteCombine CallSite = iota
	siteParse
	siteSummarise
	siteLookup
)

var calculatorSites = MustDeclare("Calculator",
	Site{ID: siteCombine, Name: "Combine"},
	Site{ID: siteParse, Name: "Parse"},
	Site{ID: siteSummarise, Name: "Summarise"},
	Site{ID: siteLookup, Name: "Lookup"},
)

type calculatorDouble struct {
	*Double
	// Precision is a property, backed by plain state and never recorded
	Precision int
}

var _ calculator = (*calculatorDouble)(nil)

func newCalculatorDouble(options ...Option) *calculatorDouble {
	options = append([]Option{WithSettings(Settings{})}, options...)
	return &calculatorDouble{Double: New(calculatorSites, options...)}
}

func (c *calculatorDouble) Combine(a, b int) int {
	return Result(c.Double, siteCombine, 0, a, b)
}

func (c *calculatorDouble) Parse(s string) []int {
	return Result[[]int](c.Double, siteParse, nil, s)
}

func (c *calculatorDouble) Summarise(label string, values ...int) string {
	return Result(c.Double, siteSummarise, "", label, values)
}

func (c *calculatorDouble) Lookup(key *string) error {
	return Result[error](c.Double, siteLookup, nil, key)
}
