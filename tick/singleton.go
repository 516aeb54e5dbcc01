package tick

// Singleton gives a system typed access to one shared resource. Declare it as
// a struct field and the Scheduler wires it up during Register.
type Singleton[T any] struct {
	resources *Resources
	ptr       *T
}

// NewSingleton creates a Singleton accessor for the given resources.
// If the resource does not exist yet it is created from initializer, or from
// the zero value when no initializer is given.
func NewSingleton[T any](resources *Resources, initializer ...T) *Singleton[T] {
	ptr := Get[T](resources)
	if ptr == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		ptr = Insert(resources, value)
	}

	return &Singleton[T]{
		resources: resources,
		ptr:       ptr,
	}
}

// Init binds the Singleton to a resource set.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(resources *Resources) {
	s.resources = resources
	s.updateCache()
}

// Get returns a pointer to the resource, or nil if it has not been inserted.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.updateCache()
	}
	return s.ptr
}

func (s *Singleton[T]) updateCache() {
	if s.resources == nil {
		return
	}
	if v, ok := s.resources.lookup(typeOf[T]()).(*T); ok {
		s.ptr = v
	} else {
		s.ptr = nil
	}
}

// Exists reports whether the resource has been inserted.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
