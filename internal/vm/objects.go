package vm

// Function is a compiled user function. Entry is the absolute chunk offset
// of its first instruction; it is patched in once the body has been
// emitted, so forward references and recursion resolve through the shared
// constant.
type Function struct {
	Name      string
	Entry     int
	NumParams int
}

// Array is a mutable ordered collection of values.
type Array struct {
	Elements []Value
}
