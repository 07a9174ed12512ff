// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/research-directory/internal/order"
	"github.com/pdiddy/research-directory/internal/query"
)

// params reads typed query parameters, remembering the first malformed one.
type params struct {
	q   url.Values
	err error
}

func (p *params) str(name string) string {
	return strings.TrimSpace(p.q.Get(name))
}

// list returns every non-empty value of a repeatable parameter. Values may
// also be comma separated.
func (p *params) list(name string) []string {
	var out []string
	for _, v := range p.q[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func (p *params) integer(name string) int {
	s := p.str(name)
	if s == "" || p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Errorf("parameter %s: %q is not an integer", name, s)
		return 0
	}
	return n
}

func (p *params) number(name string) *float64 {
	s := p.str(name)
	if s == "" || p.err != nil {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.err = fmt.Errorf("parameter %s: %q is not a number", name, s)
		return nil
	}
	return &f
}

// sort returns the sort parameter, rejecting keys not in keys. An empty
// value selects the default order.
func (p *params) sort(keys []string) string {
	key := p.str("sort")
	if key == "" || p.err != nil {
		return key
	}
	if !order.Known(keys, key) {
		p.err = fmt.Errorf("parameter sort: unknown key %q (one of %s)", key, strings.Join(keys, ", "))
		return ""
	}
	return key
}

func (p *params) window(defaultLimit int) query.Window {
	w := query.Window{Offset: p.integer("offset"), Limit: p.integer("limit")}
	if w.Offset < 0 && p.err == nil {
		p.err = fmt.Errorf("parameter offset must not be negative")
	}
	if w.Limit <= 0 {
		w.Limit = defaultLimit
	}
	return w
}
