package tick

import (
	"reflect"
	"sort"
)

// Resources holds one value per Go type that systems share across frames,
// such as the loaded replay, the playback controller or the current viewport.
type Resources struct {
	entries map[reflect.Type]any
}

// NewResources creates an empty resource set.
func NewResources() *Resources {
	return &Resources{
		entries: make(map[reflect.Type]any),
	}
}

// Insert stores value as the resource of type T, replacing any previous one,
// and returns a pointer to the stored copy.
func Insert[T any](r *Resources, value T) *T {
	ptr := new(T)
	*ptr = value
	r.entries[typeOf[T]()] = ptr
	return ptr
}

// Get returns the resource of type T or nil when none was inserted.
func Get[T any](r *Resources) *T {
	if r == nil {
		return nil
	}
	ptr, ok := r.entries[typeOf[T]()]
	if !ok {
		return nil
	}
	return ptr.(*T)
}

// Remove drops the resource of type T. Singletons already holding it keep
// their pointer until they are initialized again.
func Remove[T any](r *Resources) bool {
	t := typeOf[T]()
	if _, ok := r.entries[t]; !ok {
		return false
	}
	delete(r.entries, t)
	return true
}

// Read stores the resource matching the pointed-to pointer type into dst and
// reports whether it exists.
//
//	var player *playback.Player
//	if resources.Read(&player) { ... }
func (r *Resources) Read(dst any) bool {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Ptr {
		panic("tick: Read expects a pointer to a pointer")
	}
	ptr, ok := r.entries[v.Elem().Type().Elem()]
	if !ok {
		return false
	}
	v.Elem().Set(reflect.ValueOf(ptr))
	return true
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.entries)
}

// Types returns the sorted type names of all stored resources.
func (r *Resources) Types() []string {
	names := make([]string, 0, len(r.entries))
	for t := range r.entries {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

func (r *Resources) lookup(t reflect.Type) any {
	return r.entries[t]
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
