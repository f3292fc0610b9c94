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

package atomicx

import "sync/atomic"

// Bool is a lifecycle flag for components that may only be started once.
type Bool struct {
	value atomic.Uint32
}

func NewBool() *Bool {
	return &Bool{}
}

func (b *Bool) Load() bool {
	return b.value.Load() == 1
}

func (b *Bool) Store(val bool) {
	b.value.Store(toUint32(val))
}

func (b *Bool) Swap(newVal bool) bool {
	return b.value.Swap(toUint32(newVal)) == 1
}

func (b *Bool) CompareAndSwap(oldVal, newVal bool) bool {
	return b.value.CompareAndSwap(toUint32(oldVal), toUint32(newVal))
}

func toUint32(val bool) uint32 {
	if val {
		return 1
	}
	return 0
}
