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

	Products(ctx context.Context) error
	AddProduct(ctx context.Context) error
	DeleteProduct(ctx context.Context, args []string) error
	Posts(ctx context.Context) error
	AddPost(ctx context.Context) error
	DeletePost(ctx context.Context, args []string) error

	ShowCart(ctx context.Context) error
	CartAdd(ctx context.Context, args []string) error
	CartSet(ctx context.Context, args []string) error
	CartRemove(ctx context.Context, args []string) error
	CartClear(ctx context.Context) error
	CartOpen(ctx context.Context) error
	CartClose(ctx context.Context) error
	CartPush(ctx context.Context) error
	RemoteCart(ctx context.Context) error
}

const (
	helpCommon = "Available commands: products, addproduct, delproduct <id>, posts, addpost, delpost <id>, " +
		"cart, cartadd <productID> [qty], cartset <productID> <qty>, cartrm <productID>, cartclear, cartopen, cartclose, " +
		"cartpush, remotecart"
	helpGuest  = helpCommon + ", register, login, exit"
	helpMember = helpCommon + ", whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its arguments, and dispatches to methods on 'a'. Unknown
// commands are reported back to the user. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// The prompt shows the current status (from statusFn): the account email,
// "guest", or "…" while the session is still being restored.
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("shop %s> ", statusFn()))
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
				printlnFn(helpMember)
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

		case "products":
			cmdErr = a.Products(ctx)
		case "addproduct":
			cmdErr = a.AddProduct(ctx)
		case "delproduct":
			cmdErr = a.DeleteProduct(ctx, args)
		case "posts":
			cmdErr = a.Posts(ctx)
		case "addpost":
			cmdErr = a.AddPost(ctx)
		case "delpost":
			cmdErr = a.DeletePost(ctx, args)

		case "cart":
			cmdErr = a.ShowCart(ctx)
		case "cartadd":
			cmdErr = a.CartAdd(ctx, args)
		case "cartset":
			cmdErr = a.CartSet(ctx, args)
		case "cartrm":
			cmdErr = a.CartRemove(ctx, args)
		case "cartclear":
			cmdErr = a.CartClear(ctx)
		case "cartopen":
			cmdErr = a.CartOpen(ctx)
		case "cartclose":
			cmdErr = a.CartClose(ctx)
		case "cartpush":
			cmdErr = a.CartPush(ctx)
		case "remotecart":
			cmdErr = a.RemoteCart(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}
