package transforms

// A Transform iterates a passed point of the complex plane.
type Transform interface {
	Next(complex128) complex128
}

var _ Transform = Polynomial{}
