// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package console

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/text/cases"

	"github.com/gogpu/aspect/config"
)

// Console errors.
var (
	ErrDuplicate  = errors.New("console: variable already registered")
	ErrUnknownVar = errors.New("console: unknown variable")
	ErrBadValue   = errors.New("console: bad value")
	ErrReadOnly   = errors.New("console: variable is read-only")
)

// Var is a console variable. Get formats the current value; Set parses
// and stores a new one. A nil Set makes the variable read-only.
type Var struct {
	Name string
	Help string
	Get  func() string
	Set  func(string) error
}

// Registry holds console variables. Names are matched case-insensitively.
// A Registry is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	vars map[string]Var
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{vars: make(map[string]Var)}
}

func fold(name string) string {
	return cases.Fold().String(name)
}

// Register adds v. It fails with ErrDuplicate if a variable with the same
// folded name exists.
func (r *Registry) Register(v Var) error {
	if v.Name == "" || v.Get == nil {
		return fmt.Errorf("%w: %q needs a name and a getter", ErrBadValue, v.Name)
	}
	k := fold(v.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vars[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, v.Name)
	}
	r.vars[k] = v
	return nil
}

// Lookup returns the variable called name.
func (r *Registry) Lookup(name string) (Var, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vars[fold(name)]
	return v, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.vars))
	for _, v := range r.vars {
		names = append(names, v.Name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Exec runs one console line and returns the text to echo.
//
//	name          print the value
//	name value    set the value
//	help name     print the description
func (r *Registry) Exec(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	if strings.EqualFold(fields[0], "help") && len(fields) == 2 {
		v, ok := r.Lookup(fields[1])
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownVar, fields[1])
		}
		return v.Name + ": " + v.Help, nil
	}

	v, ok := r.Lookup(fields[0])
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVar, fields[0])
	}
	if len(fields) > 1 {
		if v.Set == nil {
			return "", fmt.Errorf("%w: %s", ErrReadOnly, v.Name)
		}
		value := strings.Join(fields[1:], " ")
		if err := v.Set(value); err != nil {
			return "", fmt.Errorf("console: set %s: %w", v.Name, err)
		}
	}
	return v.Name + " = " + v.Get(), nil
}

// BoolVar exposes b. Besides the usual boolean spellings it accepts
// "toggle".
func BoolVar(name, help string, b *atomic.Bool) Var {
	return Var{
		Name: name,
		Help: help,
		Get:  func() string { return strconv.FormatBool(b.Load()) },
		Set: func(s string) error {
			if strings.EqualFold(s, "toggle") {
				b.Store(!b.Load())
				return nil
			}
			v, err := strconv.ParseBool(s)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrBadValue, s)
			}
			b.Store(v)
			return nil
		},
	}
}

// FloatVar exposes f.
func FloatVar(name, help string, f *config.Float) Var {
	return Var{
		Name: name,
		Help: help,
		Get:  func() string { return strconv.FormatFloat(f.Load(), 'g', -1, 64) },
		Set: func(s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("%w: %q is not a number", ErrBadValue, s)
			}
			f.Store(v)
			return nil
		},
	}
}

// IntVar exposes n, accepting values in [lo, hi].
func IntVar(name, help string, n *atomic.Int32, lo, hi int32) Var {
	return Var{
		Name: name,
		Help: help,
		Get:  func() string { return strconv.Itoa(int(n.Load())) },
		Set: func(s string) error {
			v, err := strconv.ParseInt(s, 10, 32)
			if err != nil || int32(v) < lo || int32(v) > hi {
				return fmt.Errorf("%w: %q not in [%d, %d]", ErrBadValue, s, lo, hi)
			}
			n.Store(int32(v))
			return nil
		},
	}
}

// HexVar exposes a shader fingerprint.
func HexVar(name, help string, h *atomic.Uint32) Var {
	return Var{
		Name: name,
		Help: help,
		Get: func() string {
			b, _ := config.Hex(h.Load()).MarshalText()
			return string(b)
		},
		Set: func(s string) error {
			var v config.Hex
			if err := v.UnmarshalText([]byte(s)); err != nil {
				return fmt.Errorf("%w: %v", ErrBadValue, err)
			}
			h.Store(uint32(v))
			return nil
		},
	}
}
