package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/clubportal/internal/client/router"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

type command struct {
	name  string
	usage string
	help  string
	// args is the minimum number of arguments.
	args int
	// hidden commands are dispatched but not listed by help.
	hidden bool
	run    func(ctx context.Context, args []string) error
}

// commandSet is what the REPL needs from the App. Tests provide a
// lightweight stub.
type commandSet interface {
	view() router.View
	commands(v router.View) []command
	prompt(v router.View) string
	report(err error)
}

func find(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(v router.View, cmds []command) {
	printlnFn(fmt.Sprintf("Commands in the %s view:", v))
	for _, c := range cmds {
		if c.hidden {
			continue
		}
		usage := c.usage
		if usage == "" {
			usage = c.name
		}
		printlnFn(fmt.Sprintf("  %-28s %s", usage, c.help))
	}
	printlnFn(fmt.Sprintf("  %-28s %s", "help", "show this list"))
	printlnFn(fmt.Sprintf("  %-28s %s", "exit | quit", "leave the program"))
}

// runREPL reads commands until EOF, "exit"/"quit" or ctx cancellation.
//
// The view is chosen after each line is read, so a command always runs
// against the session as it is at that moment. A command that exists only
// in another view is reported as not available rather than unknown.
func runREPL(ctx context.Context, a commandSet, reader *bufio.Reader) {
	for {
		printlnFn(a.prompt(a.view()))
		line, err := readLine(ctx, reader)
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		eof := err != nil

		parts := strings.Fields(line)
		if len(parts) > 0 && !dispatch(ctx, a, parts[0], parts[1:]) {
			return
		}
		if eof {
			return
		}
	}
}

// dispatch runs one command and reports whether the loop should go on.
func dispatch(ctx context.Context, a commandSet, name string, args []string) bool {
	v := a.view()
	cmds := a.commands(v)

	switch name {
	case "help":
		printHelp(v, cmds)
		return true
	case "exit", "quit":
		printlnFn("Bye!")
		return false
	}

	cmd, ok := find(cmds, name)
	if !ok {
		for _, other := range router.Views {
			if other == v {
				continue
			}
			if _, elsewhere := find(a.commands(other), name); elsewhere {
				printlnFn(fmt.Sprintf("%q is not available in the %s view", name, v))
				return true
			}
		}
		printlnFn("Unknown command:", name)
		return true
	}
	if len(args) < cmd.args {
		printlnFn("Usage:", cmd.usage)
		return true
	}
	if err := cmd.run(ctx, args); err != nil {
		a.report(err)
	}
	return true
}
