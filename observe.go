// seehuhn.de/go/viewport - pan and zoom for infinite canvases
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package viewport

import "strings"

// Field identifies observable parts of a [State].
type Field uint8

// These are the observable fields.
const (
	FieldVisible Field = 1 << iota
	FieldOffset
	FieldScale
	FieldFrame

	AllFields = FieldVisible | FieldOffset | FieldScale | FieldFrame
)

func (f Field) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, x := range []struct {
		bit  Field
		name string
	}{
		{FieldVisible, "visible"},
		{FieldOffset, "offset"},
		{FieldScale, "scale"},
		{FieldFrame, "frame"},
	} {
		if f&x.bit != 0 {
			parts = append(parts, x.name)
		}
	}
	return strings.Join(parts, "|")
}

// Update describes one committed change of the viewport transform.
// Old and New are complete states; Changed lists the fields which differ.
type Update struct {
	Old, New State
	Changed  Field
}

// Has reports whether any of the given fields changed.
func (u Update) Has(f Field) bool {
	return u.Changed&f != 0
}

type subscription struct {
	fields    Field
	fn        func(Update)
	cancelled bool
}

// Subscribe registers fn to be called after every operation which changes
// at least one of the given fields. The returned function removes the
// subscription; it may be called more than once, also from within fn.
//
// The controller state is fully committed before fn runs, so
// [Controller.State] called from fn never returns a partial update.
// Subscribers which watch [FieldVisible] are called before all others.
// If fn itself mutates the controller, the resulting update is delivered
// once the current one has reached every subscriber.
func (c *Controller) Subscribe(fields Field, fn func(Update)) (cancel func()) {
	s := &subscription{fields: fields, fn: fn}
	c.subs = append(c.subs, s)
	return func() {
		if s.cancelled {
			return
		}
		s.cancelled = true
		if !c.dispatching {
			c.compact()
		}
	}
}

// publish queues u and, unless a dispatch is already running further up
// the call stack, delivers all queued updates in order.
func (c *Controller) publish(u Update) {
	c.pending = append(c.pending, u)
	if c.dispatching {
		return
	}

	c.dispatching = true
	defer func() {
		clear(c.pending)
		c.pending = c.pending[:0]
		c.dispatching = false
		c.compact()
	}()
	for i := 0; i < len(c.pending); i++ {
		c.deliver(c.pending[i])
	}
}

// deliver calls the subscribers of u, visible-rect watchers first.
// Subscriptions added during delivery only see later updates.
func (c *Controller) deliver(u Update) {
	subs := c.subs[:len(c.subs):len(c.subs)]
	for _, visibleFirst := range []bool{true, false} {
		for _, s := range subs {
			if s.cancelled || s.fields&u.Changed == 0 {
				continue
			}
			if (s.fields&FieldVisible != 0) != visibleFirst {
				continue
			}
			s.fn(u)
		}
	}
}

// compact drops cancelled subscriptions.
func (c *Controller) compact() {
	live := c.subs[:0]
	for _, s := range c.subs {
		if !s.cancelled {
			live = append(live, s)
		}
	}
	clear(c.subs[len(live):])
	c.subs = live
}
