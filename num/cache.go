// Copyright 2016 The PRISM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package num

// Cache holds a lazily rebuilt global system tied to a topology version.
// Every mutation of the owning solver's nodes, elements or materials must call
// Bump before returning; Get then rebuilds on the next analysis. The version
// counter makes invalidation observable, as opposed to a nullable matrix field
// checked ad hoc.
type Cache struct {
	version int     // current topology version
	built   int     // topology version the cached system was built for
	sys     *System // cached system; valid only when built == version
}

// Bump invalidates the cache. Must be called synchronously by every
// topology mutation, before the mutating call returns.
func (o *Cache) Bump() {
	o.version++
	o.sys = nil
}

// Version returns the current topology version
func (o *Cache) Version() int {
	return o.version
}

// Fresh tells whether the cached system matches the current topology
func (o *Cache) Fresh() bool {
	return o.sys != nil && o.built == o.version
}

// Get returns the cached system, rebuilding it with build when the topology
// changed since the last call. The build function receives no arguments: the
// owning solver closes over its own registries.
func (o *Cache) Get(build func() (*System, error)) (sys *System, err error) {
	if o.Fresh() {
		return o.sys, nil
	}
	sys, err = build()
	if err != nil {
		return nil, err
	}
	o.sys = sys
	o.built = o.version
	return
}
