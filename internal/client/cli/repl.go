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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Products(ctx context.Context, args []string) error
	Product(ctx context.Context, args []string) error
	Cart(ctx context.Context) error
	Add(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
}

const (
	helpGuest    = "Available commands: register, login, products, product, cart, add, update, remove, clear, exit"
	helpLoggedIn = "Available commands: whoami, products, product, cart, add, update, remove, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The prompt shows statusFn(). The loop ends on EOF, on "exit"/"quit" or when
// ctx is done. A command error is printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for ctx.Err() == nil {
		printlnFn(fmt.Sprintf("shop %s > ", statusFn()))

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
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "products", "ls":
			cmdErr = a.Products(ctx, args)

		case "product", "show":
			cmdErr = a.Product(ctx, args)

		case "cart":
			cmdErr = a.Cart(ctx)

		case "add":
			cmdErr = a.Add(ctx, args)

		case "update":
			cmdErr = a.Update(ctx, args)

		case "remove", "rm":
			cmdErr = a.Remove(ctx, args)

		case "clear":
			cmdErr = a.Clear(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
