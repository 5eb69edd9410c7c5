package memory

// Registry is an ordered, append-only collection of clones addressed by
// stable 1-based numbers. Clone numbers are never reused and always
// increase; a newly created clone's number is the post-append count,
// irrespective of which clone was duplicated.
type Registry[T any] struct {
	clones []*Clone[T]
}

// NewRegistry creates a registry holding exactly one clone, number 1, with
// both histories empty.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		clones: []*Clone[T]{NewClone[T]()},
	}
}

// Count returns the number of clones in the registry.
func (r *Registry[T]) Count() int {
	return len(r.clones)
}

// resolve maps a 1-based clone number to its clone. Resolution happens
// before any state change, so a failed call never partially mutates.
func (r *Registry[T]) resolve(number int) (*Clone[T], error) {
	if number < 1 || number > len(r.clones) {
		return nil, InvalidCloneError{Number: number}
	}

	return r.clones[number-1], nil
}

// Learn appends a fact to the numbered clone's learned history.
func (r *Registry[T]) Learn(number int, v T) error {
	c, err := r.resolve(number)
	if err != nil {
		return err
	}

	c.Learn(v)
	return nil
}

// Rollback undoes the numbered clone's most recently learned fact.
func (r *Registry[T]) Rollback(number int) error {
	c, err := r.resolve(number)
	if err != nil {
		return err
	}

	return c.Rollback()
}

// Relearn redoes the numbered clone's most recently rolled-back fact.
func (r *Registry[T]) Relearn(number int) error {
	c, err := r.resolve(number)
	if err != nil {
		return err
	}

	return c.Relearn()
}

// Check returns the textual form of the numbered clone's most recently
// learned fact, or CheckBasic when its history is empty.
func (r *Registry[T]) Check(number int) (string, error) {
	c, err := r.resolve(number)
	if err != nil {
		return "", err
	}

	return c.Check(), nil
}

// Clone duplicates the numbered clone and appends the duplicate to the
// registry, returning the new clone's number.
func (r *Registry[T]) Clone(number int) (int, error) {
	c, err := r.resolve(number)
	if err != nil {
		return 0, err
	}

	r.clones = append(r.clones, c.Duplicate())
	return len(r.clones), nil
}
