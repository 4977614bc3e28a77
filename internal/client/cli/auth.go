package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pantrypal/pantrypal/internal/client/api"
	"github.com/pantrypal/pantrypal/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates the account. Registration
// does not log the new user in; the user follows up with "login".
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, email, string(password), username); err != nil {
		return err
	}

	fmt.Println("Account created. Use 'login' to sign in.")
	return nil
}

// Login prompts for credentials and authenticates. On success the session is
// persisted locally and survives restarts until the token expires.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	state := a.session.State()
	if state.TokenExpiration != nil {
		fmt.Printf("Logged in (session valid until %s)\n", state.TokenExpiration.Local().Format("2006-01-02 15:04"))
	} else {
		fmt.Println("Logged in")
	}
	return nil
}

// Logout clears the persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

// Profile patches a subset of {username, email, password}. Empty answers
// leave the corresponding field untouched.
func (a *App) Profile(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "New username (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSimpleText(a.reader, "New password (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var update api.ProfileUpdate
	if username != "" {
		update.Username = &username
	}
	if email != "" {
		update.Email = &email
	}
	if password != "" {
		update.Password = &password
	}
	if update.Username == nil && update.Email == nil && update.Password == nil {
		fmt.Println("Nothing to update")
		return nil
	}

	if err := a.session.UpdateProfile(ctx, update); err != nil {
		return err
	}
	fmt.Println("Profile updated")
	return nil
}
