package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	List(ctx context.Context, args []string) error
	Sort(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Restore(ctx context.Context) error
	Deleted(ctx context.Context) error
	Clear(ctx context.Context) error
	Status(ctx context.Context) error
}

const helpText = `Available commands:
  (l)ist [page] [limit] [search...]  list users
  sort <field>[-desc] [asc|desc]     change the list order
  show <id>                          show one user
  add                                create a user
  edit <id>                          edit a user
  delete <id>                        delete a user
  deleted                            list locally deleted ids
  restore                            restore locally deleted users
  clear                              drop the local cache
  status                             show cache status
  exit | quit                        leave the program`

// runREPL starts a read–eval–print loop for the users CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// promptFn is printed before every line unless it returns an empty string,
// which keeps piped sessions free of prompt noise. Errors returned by
// command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if p := promptFn(); p != "" {
			printlnFn(p)
		}

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "sort":
			cmdErr = a.Sort(ctx, args)

		case "show":
			cmdErr = a.Show(ctx, args)

		case "add":
			cmdErr = a.Add(ctx)

		case "edit":
			cmdErr = a.Edit(ctx, args)

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "deleted":
			cmdErr = a.Deleted(ctx)

		case "restore":
			cmdErr = a.Restore(ctx)

		case "clear":
			cmdErr = a.Clear(ctx)

		case "status":
			cmdErr = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr.Error())
		}
		if err != nil {
			return
		}
	}
}
