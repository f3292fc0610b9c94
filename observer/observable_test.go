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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type source struct {
	name string
}

type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) FieldChanged(src *source, field string) {
	m.Called(src, field)
}

type recorder struct {
	id    int
	calls *[]int
}

func (r *recorder) FieldChanged(_ *source, _ string) {
	*r.calls = append(*r.calls, r.id)
}

// funcObserver is a bare func type and therefore not comparable.
type funcObserver func(*source, string)

func (f funcObserver) FieldChanged(src *source, field string) {
	f(src, field)
}

func TestObservable_NotifyOrder(t *testing.T) {
	const n = 5
	var (
		obs   Observable[*source]
		calls []int
	)

	for i := 0; i < n; i++ {
		obs.Subscribe(&recorder{id: i, calls: &calls})
	}
	assert.Equal(t, n, obs.Len())

	obs.Notify(&source{name: "btn"}, "value")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, calls)
}

func TestObservable_NotifyArguments(t *testing.T) {
	var obs Observable[*source]
	src := &source{name: "pot"}

	m := new(MockObserver)
	m.On("FieldChanged", src, "rise").Return().Once()
	obs.Subscribe(m)

	obs.Notify(src, "rise")
	m.AssertExpectations(t)
}

func TestObservable_Unsubscribe(t *testing.T) {
	t.Run("removes only the matching observer", func(t *testing.T) {
		var (
			obs   Observable[*source]
			calls []int
		)
		first := &recorder{id: 1, calls: &calls}
		second := &recorder{id: 2, calls: &calls}
		obs.Subscribe(first)
		obs.Subscribe(second)

		obs.Unsubscribe(first)
		obs.Notify(nil, "value")

		assert.Equal(t, []int{2}, calls)
		assert.Equal(t, 1, obs.Len())
	})

	t.Run("equal values are distinct observers", func(t *testing.T) {
		var (
			obs   Observable[*source]
			calls []int
		)
		a := &recorder{id: 7, calls: &calls}
		b := &recorder{id: 7, calls: &calls}
		obs.Subscribe(a)
		obs.Subscribe(b)

		obs.Unsubscribe(a)
		assert.Equal(t, 1, obs.Len())
	})

	t.Run("duplicates are all removed", func(t *testing.T) {
		var (
			obs   Observable[*source]
			calls []int
		)
		r := &recorder{id: 1, calls: &calls}
		obs.Subscribe(r)
		obs.Subscribe(r)
		obs.Notify(nil, "value")
		assert.Equal(t, []int{1, 1}, calls)

		obs.Unsubscribe(r)
		assert.Zero(t, obs.Len())
	})

	t.Run("unknown observer is a no-op", func(t *testing.T) {
		var (
			obs   Observable[*source]
			calls []int
		)
		obs.Subscribe(&recorder{id: 1, calls: &calls})
		obs.Unsubscribe(&recorder{id: 1, calls: &calls})
		obs.Unsubscribe(nil)
		assert.Equal(t, 1, obs.Len())
	})

	t.Run("non comparable observer does not panic", func(t *testing.T) {
		var obs Observable[*source]
		fo := funcObserver(func(*source, string) {})
		h := obs.Subscribe(fo)

		assert.NotPanics(t, func() { obs.Unsubscribe(fo) })
		assert.Equal(t, 1, obs.Len())
		assert.True(t, obs.Cancel(h))
		assert.Zero(t, obs.Len())
	})
}

func TestObservable_Cancel(t *testing.T) {
	var (
		obs   Observable[*source]
		calls []int
	)
	r := &recorder{id: 3, calls: &calls}
	h1 := obs.Subscribe(r)
	h2 := obs.Subscribe(r)
	require.NotEqual(t, h1, h2)

	assert.True(t, obs.Cancel(h1))
	assert.False(t, obs.Cancel(h1))
	assert.False(t, obs.Cancel(0))

	obs.Notify(nil, "value")
	assert.Equal(t, []int{3}, calls)

	assert.True(t, obs.Cancel(h2))
	assert.Zero(t, obs.Len())
}

func TestObservable_SubscribeNil(t *testing.T) {
	var obs Observable[*source]
	assert.Equal(t, Handle(0), obs.Subscribe(nil))
	assert.Zero(t, obs.Len())
	assert.NotPanics(t, func() { obs.Notify(nil, "value") })
}

func TestObservable_ChangeDuringNotify(t *testing.T) {
	var (
		obs   Observable[*source]
		calls []int
	)
	late := &recorder{id: 2, calls: &calls}
	var self *Func[*source]
	self = NewFunc(func(_ *source, _ string) {
		calls = append(calls, 1)
		obs.Unsubscribe(self)
		obs.Subscribe(late)
	})
	obs.Subscribe(self)

	obs.Notify(nil, "value")
	assert.Equal(t, []int{1}, calls)

	obs.Notify(nil, "value")
	assert.Equal(t, []int{1, 2}, calls)
}

func TestObservable_PanicPropagates(t *testing.T) {
	var (
		obs   Observable[*source]
		calls []int
	)
	obs.Subscribe(NewFunc(func(_ *source, _ string) { panic("boom") }))
	obs.Subscribe(&recorder{id: 1, calls: &calls})

	assert.PanicsWithValue(t, "boom", func() { obs.Notify(nil, "value") })
	assert.Empty(t, calls)
}

func TestFieldFunc(t *testing.T) {
	var (
		obs  Observable[*source]
		seen []string
	)
	obs.Subscribe(NewFieldFunc("rise", func(src *source) {
		seen = append(seen, src.name)
	}))

	obs.Notify(&source{name: "a"}, "fall")
	obs.Notify(&source{name: "b"}, "rise")
	obs.Notify(&source{name: "c"}, "value")

	assert.Equal(t, []string{"b"}, seen)
}
