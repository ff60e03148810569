package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests provide a stub.
type execIface interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refetch(ctx context.Context) error
	Open(ctx context.Context, area string) error
	Back(ctx context.Context) error
}

// runREPL reads commands from reader and dispatches them to a until EOF,
// "exit" or "quit".
//
//	help             show available commands
//	login            sign in
//	logout           sign out
//	whoami           show the current identity
//	refetch          re-resolve the identity from stored credentials
//	open <area>      enter admin, association, volunteer or guest
//	back             return to the previous route
//	exit | quit      leave the program
//
// Command errors are printed and the loop continues.
//
// The reader is shared with the command prompts so no input is buffered
// away from them.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("together %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		err = nil
		switch cmd {
		case "help":
			printlnFn("Available commands: login, logout, whoami, refetch, open <area>, back, exit")
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "refetch":
			err = a.Refetch(ctx)
		case "open":
			if len(args) == 0 {
				printlnFn("Usage: open <area>")
				continue
			}
			err = a.Open(ctx, args[0])
		case "back":
			err = a.Back(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
