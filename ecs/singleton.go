package ecs

// Singleton gives a system access to the one value of type T kept outside
// any entity, such as game state or configuration.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T in s.
func NewSingleton[T any](s *Storage) *Singleton[T] {
	return &Singleton[T]{storage: s}
}

// Init binds the singleton to s.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
}

// Get returns the singleton, storing a zero T first when none exists.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.ptr = GetSingleton[T](s.storage)
	}
	if s.ptr == nil {
		var zero T
		s.ptr = SetSingleton(s.storage, zero)
	}
	return s.ptr
}

// Set replaces the singleton's value.
func (s *Singleton[T]) Set(v T) {
	s.ptr = SetSingleton(s.storage, v)
}

// Exists reports whether the singleton has been stored.
func (s *Singleton[T]) Exists() bool {
	return s.ptr != nil || GetSingleton[T](s.storage) != nil
}
