package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/labstack/gommon/color"
)

type stdPrinter struct {
	color *color.Color
}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func (s stdPrinter) Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		return fmt.Fprint(w, s.color.Red(fmt.Sprintf(format, a...)))
	}
	return fmt.Fprintf(w, format, a...)
}

func (s stdPrinter) Fprintln(w io.Writer, a ...interface{}) (n int, err error) {
	if w == os.Stderr {
		return fmt.Fprintln(w, s.color.Red(fmt.Sprint(a...)))
	}
	return fmt.Fprintln(w, a...)
}

// exitCode carries a process status out of a command without printing
// anything else
type exitCode int

func (e exitCode) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func main() {
	err := Run(os.Args[1:], os.Exit)

	var code exitCode
	switch {
	case err == nil:
	case errors.As(err, &code):
		os.Exit(int(code))
	default:
		fmt.Fprintln(os.Stderr, "lumen:", err)
		os.Exit(1)
	}
}
