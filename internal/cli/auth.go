package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/common"
)

// Register prompts for a display name, email, and password, creates the
// account, and starts the sync loop on success.
func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter display name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.session.Register(ctx, name, email, string(password))

	if st := a.session.State(); st.Err != "" {
		fmt.Fprintln(a.out, st.Err)
		a.session.ClearError()
		return nil
	}

	fmt.Fprintln(a.out, "Registration successful")
	a.startSync(ctx)
	return nil
}

// Login prompts for credentials and starts the sync loop on success.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	a.session.Login(ctx, email, string(password))

	if st := a.session.State(); st.Err != "" {
		fmt.Fprintln(a.out, st.Err)
		a.session.ClearError()
		return nil
	}

	fmt.Fprintln(a.out, "Login successful")
	a.startSync(ctx)
	return nil
}

// Logout stops the sync loop and clears the session.
func (a *App) Logout(ctx context.Context) error {
	a.cancelSync()
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Away simulates the client surface going to the background.
func (a *App) Away(ctx context.Context) error {
	a.session.SetVisible(ctx, false)
	return nil
}

// Back simulates the client surface returning to the foreground.
func (a *App) Back(ctx context.Context) error {
	a.session.SetVisible(ctx, true)
	return nil
}
