package trees

// Layers is read access to an implicit binary tree stored as flat layers.
// Depth 0 is the base array; each layer above holds half as many entries,
// rounded up, and the top layer has a single root entry.
type Layers[T any] interface {
	// Depth returns the number of layers including the base.
	Depth() int
	// Width returns the length of the layer at depth.
	Width(depth int) int
	// At returns entry idx of the layer at depth.
	At(depth, idx int) T
}

// Writer adds mutation of the layers above the base. The base layer is
// borrowed from the caller and is never written.
type Writer[T any] interface {
	Layers[T]
	Set(depth, idx int, v T)
	// Layer returns the storage of a layer; only depths >= 1 may be written.
	Layer(depth int) []T
}
