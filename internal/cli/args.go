// Package cli holds the plumbing shared by the render commands: positional
// argument parsing with range checks, usage output, common flags and the
// timed run itself.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Process exit codes.
const (
	ExitOK          = 0
	ExitArgCount    = 1 // wrong number of positional arguments
	ExitInvalid     = 2 // non-numeric or out-of-range value, or a bad flag
	ExitInterrupted = 3 // a signal arrived while rendering
	ExitFailure     = 4 // the render itself failed
)

// UsageError is an argument error. Its message is printed followed by the
// command usage, and the process exits with Code.
type UsageError struct {
	Code int
	Msg  string
}

func (e *UsageError) Error() string { return e.Msg }

// ParseFloat parses s as a float64 in [lo, hi]. NaN is not a number.
func ParseFloat(s, name string, lo, hi float64) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, &UsageError{Code: ExitInvalid, Msg: fmt.Sprintf("Value, %s, given for %s is not a number", s, name)}
	}
	if v < lo || v > hi {
		return 0, &UsageError{Code: ExitInvalid, Msg: fmt.Sprintf("Value, %f, given for %s is not in the range [%f, %f]", v, name, lo, hi)}
	}
	return v, nil
}

// ParseInt parses s as a decimal int in [lo, hi].
func ParseInt(s, name string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &UsageError{Code: ExitInvalid, Msg: fmt.Sprintf("Value, %s, given for %s is not a number", s, name)}
	}
	if v < lo || v > hi {
		return 0, &UsageError{Code: ExitInvalid, Msg: fmt.Sprintf("Value, %d, given for %s is not in the range [%d, %d]", v, name, lo, hi)}
	}
	return v, nil
}

// Param documents one positional argument.
type Param struct {
	Name  string
	Desc  string
	Range string

	// Choices are listed under the parameter, one per line.
	Choices []string
}

// IntRange formats an integer range the way usage prints it.
func IntRange(lo, hi int) string { return fmt.Sprintf("[%d, %d]", lo, hi) }

// FloatRange formats a float range the way usage prints it.
func FloatRange(lo, hi float64) string { return fmt.Sprintf("[%f, %f]", lo, hi) }

// Command is a flag set plus a fixed list of positional parameters.
type Command struct {
	Name   string
	Params []Param
	Flags  *flag.FlagSet

	stderr io.Writer
}

// NewCommand creates a command whose flag set reports errors to stderr
// followed by the full usage.
func NewCommand(name string, params []Param, stderr io.Writer) *Command {
	c := &Command{
		Name:   name,
		Params: params,
		Flags:  flag.NewFlagSet(name, flag.ContinueOnError),
		stderr: stderr,
	}
	c.Flags.SetOutput(stderr)
	c.Flags.Usage = func() { c.PrintUsage("") }
	return c
}

// PrintUsage writes msg, when not empty, then the parameter ranges and flags.
func (c *Command) PrintUsage(msg string) {
	w := c.stderr
	if msg != "" {
		fmt.Fprintln(w, msg)
	}
	fmt.Fprintf(w, "Usage: %s [flags] %s\n", c.Name, c.synopsis())
	fmt.Fprintln(w, "The program arguments are:")
	for _, p := range c.Params {
		fmt.Fprintf(w, "\t%s: %s %s\n", p.Name, p.Desc, p.Range)
		for _, choice := range p.Choices {
			fmt.Fprintf(w, "\t\t%s\n", choice)
		}
	}
	fmt.Fprintln(w, "Flags:")
	c.Flags.PrintDefaults()
}

func (c *Command) synopsis() string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name
	}
	return strings.Join(names, " ")
}

// Parse parses flags anywhere among args and returns the positional
// arguments. Arguments that parse as numbers are always positional, so
// negative values such as -0.4 are not taken for flags. Everything after
// "--" is positional.
func (c *Command) Parse(args []string) ([]string, error) {
	var pos []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			pos = append(pos, args[i+1:]...)
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") || isNumber(arg) {
			pos = append(pos, arg)
			continue
		}

		seg := []string{arg}
		if c.takesValue(arg) && i+1 < len(args) {
			i++
			seg = append(seg, args[i])
		}
		if err := c.Flags.Parse(seg); err != nil {
			return nil, err
		}
	}

	if len(pos) != len(c.Params) {
		return nil, &UsageError{Code: ExitArgCount, Msg: fmt.Sprintf("Must have %d command line arguments.", len(c.Params))}
	}
	return pos, nil
}

// takesValue reports whether the flag in arg consumes the next argument.
func (c *Command) takesValue(arg string) bool {
	name := strings.TrimLeft(arg, "-")
	if strings.Contains(name, "=") {
		return false
	}
	f := c.Flags.Lookup(name)
	if f == nil {
		return false
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return false
	}
	return true
}

// Fail reports err and returns the exit code for it. Flag errors were
// already printed by the flag set; -h exits cleanly.
func (c *Command) Fail(err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		c.PrintUsage(ue.Msg)
		return ue.Code
	}
	return ExitInvalid
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
