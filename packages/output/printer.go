package output

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	stdoutNewline = "\n"
	logNewline    = "\r\n"
)

// Printer writes each line to stdout and, when a log sink is attached, to
// the sink with a CRLF terminator.
type Printer struct {
	writer    io.Writer
	log       io.WriteCloser
	closeOnce sync.Once
	closeErr  error
}

type PrinterOption func(*Printer)

func NewPrinter(opts ...PrinterOption) *Printer {
	p := &Printer{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithStdout(w io.Writer) PrinterOption {
	return func(p *Printer) {
		p.writer = w
	}
}

// WithLog attaches a log sink. The Printer owns it and closes it in Close.
func WithLog(w io.WriteCloser) PrinterOption {
	return func(p *Printer) {
		p.log = w
	}
}

// OpenLog creates or truncates the log file at path.
func OpenLog(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// Println prints one line. Writing stops at the first failing destination.
func (p *Printer) Println(line string) error {
	if _, err := io.WriteString(p.writer, line+stdoutNewline); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if p.log != nil {
		if _, err := io.WriteString(p.log, line+logNewline); err != nil {
			return fmt.Errorf("writing log file: %w", err)
		}
	}
	return nil
}

// Close closes the log sink, if any. Only the first call has an effect.
func (p *Printer) Close() error {
	p.closeOnce.Do(func() {
		if p.log != nil {
			if err := p.log.Close(); err != nil {
				p.closeErr = fmt.Errorf("closing log file: %w", err)
			}
		}
	})
	return p.closeErr
}
