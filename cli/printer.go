package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Printer writes user facing output for a tree of commands.
// It's safe for concurrent use, so asynchronous work started by a command may share it.
type Printer struct {
	mux sync.Mutex
	out io.Writer
}

func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

// Redirect sends all later output to writer.
func (p *Printer) Redirect(writer io.Writer) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.out = writer
}

// Write makes a Printer usable as the output of a flag set.
func (p *Printer) Write(data []byte) (int, error) {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.out.Write(data)
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p, msg...)
}
