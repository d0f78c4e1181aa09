// Package prompt asks for fractal parameters on a text terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/willbeason/escapetime/pkg/escape"
)

// ErrInput is returned when the answers cannot be read or parsed.
var ErrInput = errors.New("invalid input")

// Answers are the parameters chosen interactively.
type Answers struct {
	Mode     escape.Mode
	Exponent float64

	// CReal and CImag are zero in mandelbrot mode.
	CReal, CImag float64
}

// Apply copies the answers into p.
func (a Answers) Apply(p *escape.Params) {
	p.Mode = a.Mode
	p.Exponent = complex(a.Exponent, 0)
	p.Constant = complex(a.CReal, a.CImag)
}

// Ask writes prompts to out and reads whitespace-separated answers from in:
// the mode, then n, then for julia mode the real and imaginary parts of c.
// An unrecognized mode is an error; nothing else is asked in that case.
func Ask(in io.Reader, out io.Writer) (Answers, error) {
	s := bufio.NewScanner(in)
	s.Split(bufio.ScanWords)

	var a Answers

	fmt.Fprintln(out, "Select fractal mode [julia/mandelbrot]: ")
	word, err := next(s, "mode")
	if err != nil {
		return a, err
	}
	a.Mode, err = escape.ParseMode(word)
	if err != nil {
		return a, err
	}

	switch a.Mode {
	case escape.Julia:
		fmt.Fprintln(out, "Select parameters n, c_real, c_imaginary for function z^n + (c_real + c_imaginary): ")
		if a.Exponent, err = askFloat(s, out, "n"); err != nil {
			return a, err
		}
		if a.CReal, err = askFloat(s, out, "c_real"); err != nil {
			return a, err
		}
		if a.CImag, err = askFloat(s, out, "c_imaginary"); err != nil {
			return a, err
		}
	case escape.Mandelbrot:
		fmt.Fprintln(out, "Select parameter n for function z^n + c: ")
		if a.Exponent, err = askFloat(s, out, "n"); err != nil {
			return a, err
		}
	}

	return a, nil
}

func askFloat(s *bufio.Scanner, out io.Writer, name string) (float64, error) {
	fmt.Fprintf(out, "%s = ", name)
	word, err := next(s, name)
	if err != nil {
		return 0, err
	}
	fmt.Fprintln(out)

	v, err := strconv.ParseFloat(word, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInput, name, err)
	}
	return v, nil
}

func next(s *bufio.Scanner, name string) (string, error) {
	if s.Scan() {
		return s.Text(), nil
	}
	if err := s.Err(); err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrInput, name, err)
	}
	return "", fmt.Errorf("%w: reading %s: %w", ErrInput, name, io.ErrUnexpectedEOF)
}
