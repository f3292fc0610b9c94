// Copyright 2025 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package observer provides a generic one-to-many notification primitive.
package observer

import (
	"reflect"
	"sync"
)

// Observer receives field change notifications from a source of type T.
type Observer[T any] interface {
	FieldChanged(source T, field string)
}

// Handle identifies a single subscription. The zero Handle never matches.
type Handle uint64

type subscription[T any] struct {
	handle   Handle
	observer Observer[T]
}

// Observable keeps an ordered list of observers and notifies them
// synchronously. It does not own its observers: a subscribed observer must
// stay valid until it is unsubscribed. The zero value is ready to use.
type Observable[T any] struct {
	mu   sync.RWMutex
	next Handle
	subs []subscription[T]
}

// Subscribe appends ob to the observer list. The same observer may be
// subscribed more than once and is then notified once per subscription.
// A nil observer is ignored and the zero Handle is returned.
func (o *Observable[T]) Subscribe(ob Observer[T]) Handle {
	if ob == nil {
		return 0
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.next++
	o.subs = append(o.subs, subscription[T]{handle: o.next, observer: ob})
	return o.next
}

// Unsubscribe removes every subscription of ob, compared by identity.
// Observers whose dynamic type is not comparable are never matched; use
// Cancel with the Handle returned by Subscribe for those.
func (o *Observable[T]) Unsubscribe(ob Observer[T]) {
	o.mu.Lock()
	defer o.mu.Unlock()

	kept := o.subs[:0]
	for _, sub := range o.subs {
		if !sameObserver(sub.observer, ob) {
			kept = append(kept, sub)
		}
	}
	clear(o.subs[len(kept):])
	o.subs = kept
}

// Cancel removes the subscription created with h and reports whether it
// was still present.
func (o *Observable[T]) Cancel(h Handle) bool {
	if h == 0 {
		return false
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for i, sub := range o.subs {
		if sub.handle == h {
			o.subs = append(o.subs[:i], o.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Notify calls FieldChanged on every observer in subscription order.
// Changes to the list made by an observer take effect on the next Notify.
// A panicking observer stops the notification and the panic reaches the
// caller.
func (o *Observable[T]) Notify(source T, field string) {
	o.mu.RLock()
	copySubs := make([]subscription[T], len(o.subs))
	copy(copySubs, o.subs)
	o.mu.RUnlock()

	for _, sub := range copySubs {
		sub.observer.FieldChanged(source, field)
	}
}

// Len returns the number of active subscriptions.
func (o *Observable[T]) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return len(o.subs)
}

func sameObserver[T any](a, b Observer[T]) bool {
	if b == nil {
		return false
	}

	tp := reflect.TypeOf(a)
	if tp != reflect.TypeOf(b) || !tp.Comparable() {
		return false
	}
	return a == b
}
