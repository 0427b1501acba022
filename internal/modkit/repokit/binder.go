package repokit

// Binder makes a repo T over a given Queryer, so one repo type serves pool and tx alike
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc is a Binder from a plain function
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }
