package kitty

// ImageID is the protocol handle (the i= key) of a transmitted image.
type ImageID uint32

// ImageSet lists images transmitted and not yet erased, in assignment order.
type ImageSet []ImageID

// Registry hands out image ids and remembers the ones issued during the
// current render pass. It is not safe for concurrent use.
type Registry struct {
	next    ImageID
	current ImageSet
}

// NewRegistry returns a registry whose first id is 1.
func NewRegistry() *Registry {
	return &Registry{next: 1}
}

// NewID returns the next id and records it in the open set. Ids are never
// reused, even after the images they named are erased.
func (r *Registry) NewID() ImageID {
	id := r.next
	r.next++
	r.current = append(r.current, id)
	return id
}

// TakeCurrent returns the open set and forgets it. The caller becomes
// responsible for erasing those images. Returns nil when nothing is open.
func (r *Registry) TakeCurrent() ImageSet {
	set := r.current
	r.current = nil
	return set
}

// Current returns a copy of the open set.
func (r *Registry) Current() ImageSet {
	if r.current == nil {
		return nil
	}
	return append(ImageSet(nil), r.current...)
}

// Discard drops the open set without returning it.
func (r *Registry) Discard() {
	r.current = nil
}
