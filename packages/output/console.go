package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Console prints messages that are not part of the response: help, usage
// errors and fatal errors.
type Console struct {
	writer    io.Writer
	errWriter io.Writer
	noColor   bool
}

type ConsoleOption func(*Console)

func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{
		writer:    os.Stdout,
		errWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.noColor {
		color.NoColor = true
	}
	return c
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.writer = w
	}
}

func WithErrWriter(w io.Writer) ConsoleOption {
	return func(c *Console) {
		c.errWriter = w
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(c *Console) {
		c.noColor = nc
	}
}

// FormatHelp prints the help text verbatim.
func (c *Console) FormatHelp(help string) {
	fmt.Fprint(c.writer, help)
}

// FormatUsageError prints the usage error, a blank line and the help text,
// all on stdout.
func (c *Console) FormatUsageError(err error, help string) {
	fmt.Fprintf(c.writer, "Error: %v\n", err)
	fmt.Fprintln(c.writer)
	c.FormatHelp(help)
}

// FormatError reports a fatal error on stderr.
func (c *Console) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(c.errWriter, "%s %v\n", red("Error:"), err)
}

// FormatCause prints each wrapped cause of err on its own indented line,
// innermost last.
func (c *Console) FormatCause(err error) {
	faint := color.New(color.Faint).SprintFunc()
	for cause := unwrapOnce(err); cause != nil; cause = unwrapOnce(cause) {
		fmt.Fprintf(c.errWriter, "  %s %v\n", faint("caused by:"), cause)
	}
}

func unwrapOnce(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
