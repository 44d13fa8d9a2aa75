package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/codereviewer/internal/common"
)

// indirections for tests
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s (id=%d)\n", p.Email, p.ID)
	return nil
}

// Login authenticates and remembers the email for the prompt. The token is
// kept by the API client.
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

	if err := a.api.Login(ctx, email, password); err != nil {
		return err
	}

	a.email = email
	fmt.Println("Success!")
	return nil
}

func (a *App) Logout(context.Context) error {
	a.api.SetToken("")
	a.email = ""
	fmt.Println("Logged out")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errors.New("login first")
	}
	p, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("id:    %d\nname:  %s\nemail: %s\n", p.ID, p.Name, p.Email)
	return nil
}
