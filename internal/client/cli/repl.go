package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate. The real
// App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error

	ListPantry(ctx context.Context) error
	AddItem(ctx context.Context) error
	EditItem(ctx context.Context) error
	DeleteItem(ctx context.Context) error
	Stats(ctx context.Context) error
	Expiring(ctx context.Context) error

	Deals(ctx context.Context) error
	ShowCart(ctx context.Context) error
	CartAdd(ctx context.Context) error
	CartRemove(ctx context.Context) error
	CartQuantity(ctx context.Context) error
	CartClear(ctx context.Context) error
	Checkout(ctx context.Context) error

	ScanReceipt(ctx context.Context) error

	Recommend(ctx context.Context) error
	Chat(ctx context.Context) error
	Sessions(ctx context.Context) error
	History(ctx context.Context) error
	DeleteSession(ctx context.Context) error
	Suggest(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the PantryPal CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are printed here and otherwise
// ignored; the loop itself never terminates on a command failure.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pantrypal %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Account:  profile, logout")
				printlnFn("Pantry:   (p)antry, additem, edititem, delitem, stats, expiring, scan")
				printlnFn("Shopping: deals, cart, cartadd, cartdel, cartqty, cartclear, checkout")
				printlnFn("Recipes:  recommend, chat, sessions, history, delsession, suggest")
				printlnFn("Other:    exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "profile":
			err = a.Profile(ctx)

		case "p", "pantry":
			err = a.ListPantry(ctx)
		case "additem":
			err = a.AddItem(ctx)
		case "edititem":
			err = a.EditItem(ctx)
		case "delitem":
			err = a.DeleteItem(ctx)
		case "stats":
			err = a.Stats(ctx)
		case "expiring":
			err = a.Expiring(ctx)

		case "deals":
			err = a.Deals(ctx)
		case "cart":
			err = a.ShowCart(ctx)
		case "cartadd":
			err = a.CartAdd(ctx)
		case "cartdel":
			err = a.CartRemove(ctx)
		case "cartqty":
			err = a.CartQuantity(ctx)
		case "cartclear":
			err = a.CartClear(ctx)
		case "checkout":
			err = a.Checkout(ctx)

		case "scan":
			err = a.ScanReceipt(ctx)

		case "recommend":
			err = a.Recommend(ctx)
		case "chat":
			err = a.Chat(ctx)
		case "sessions":
			err = a.Sessions(ctx)
		case "history":
			err = a.History(ctx)
		case "delsession":
			err = a.DeleteSession(ctx)
		case "suggest":
			err = a.Suggest(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
