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

package observer

// Func adapts a closure to the Observer interface. Every *Func has its own
// identity, so it can be passed to Unsubscribe.
type Func[T any] struct {
	fn func(source T, field string)
}

func NewFunc[T any](fn func(source T, field string)) *Func[T] {
	return &Func[T]{fn: fn}
}

// NewFieldFunc returns an observer that only forwards notifications for field.
func NewFieldFunc[T any](field string, fn func(source T)) *Func[T] {
	return &Func[T]{fn: func(source T, f string) {
		if f == field {
			fn(source)
		}
	}}
}

func (f *Func[T]) FieldChanged(source T, field string) {
	f.fn(source, field)
}
