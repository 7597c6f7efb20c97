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

	"github.com/pkg/errors"
)

var (
	// ErrDuplicateCallSite is returned by Declare when two sites share an ID
	ErrDuplicateCallSite = errors.New("duplicate call-site")

	// ErrUnknownCallSite signals use of a CallSite the Interface never declared
	ErrUnknownCallSite = errors.New("unknown call-site")

	// ErrNilInterface signals a Double constructed without a declared Interface
	ErrNilInterface = errors.New("nil interface declaration")

	// ErrResultType signals an override value that cannot be returned as the method's result type
	ErrResultType = errors.New("override has wrong result type")
)

// CallSite identifies one operation on a doubled interface.
//
// Values are assigned by the author (or generator) of the double, usually with iota,
// and must be unique within one Interface. Operations that share a textual name
// get distinct CallSites.
type CallSite int

//Site pairs a CallSite with the human readable name used in failure messages
type Site struct {
	ID   CallSite
	Name string
}

func (s Site) String() string {
	return s.Name
}

/*
Interface is the declared, immutable set of call-sites for one doubled interface.

	const (
		Combine calldouble.CallSite = iota
		Parse
	)

	var calculatorSites = calldouble.MustDeclare("Calculator",
		calldouble.Site{ID: Combine, Name: "Combine"},
		calldouble.Site{ID: Parse, Name: "Parse"},
	)
*/
type Interface struct {
	name  string
	sites map[CallSite]Site
}

// Declare validates sites and returns the Interface they describe.
// Duplicate IDs are a configuration error; duplicate names are allowed.
func Declare(name string, sites ...Site) (*Interface, error) {
	iface := &Interface{name: name, sites: make(map[CallSite]Site, len(sites))}
	for _, s := range sites {
		if prev, found := iface.sites[s.ID]; found {
			return nil, errors.Wrapf(ErrDuplicateCallSite, "%s: id %d used by both %q and %q", name, s.ID, prev.Name, s.Name)
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("site%d", int(s.ID))
		}
		iface.sites[s.ID] = s
	}
	return iface, nil
}

// MustDeclare is Declare that panics on a configuration error.
// Intended for package level var declarations in doubles.
func MustDeclare(name string, sites ...Site) *Interface {
	iface, err := Declare(name, sites...)
	if err != nil {
		panic(err)
	}
	return iface
}

func (i *Interface) String() string {
	return i.name
}

// Has reports whether id was declared
func (i *Interface) Has(id CallSite) bool {
	_, found := i.sites[id]
	return found
}

// Name returns "Interface.Site" for a declared id
func (i *Interface) Name(id CallSite) string {
	if s, found := i.sites[id]; found {
		return i.name + "." + s.Name
	}
	return fmt.Sprintf("%s.<undeclared %d>", i.name, int(id))
}

// Sites returns the declared sites ordered by ID
func (i *Interface) Sites() []Site {
	result := make([]Site, 0, len(i.sites))
	for _, s := range i.sites {
		result = append(result, s)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].ID < result[b].ID })
	return result
}

// Validate is the explicit validation pass: it returns ErrUnknownCallSite
// for the first id not declared by i.
func (i *Interface) Validate(ids ...CallSite) error {
	for _, id := range ids {
		if !i.Has(id) {
			return errors.Wrapf(ErrUnknownCallSite, "%s has no call-site %d", i.name, int(id))
		}
	}
	return nil
}
