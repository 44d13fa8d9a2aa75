package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// readFile is a test seam.
var readFile = os.ReadFile

// Review sends the file named by args[0] for review, with an optional model
// label in args[1] (falls back to the configured default).
func (a *App) Review(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: review <file> [model]")
	}

	code, err := readFile(args[0])
	if err != nil {
		return err
	}

	model := a.config.DefaultModel
	if len(args) > 1 {
		model = args[1]
	}

	fmt.Println("Reviewing, this may take a while...")
	out, err := a.api.Review(ctx, string(code), model)
	if err != nil {
		return err
	}

	fmt.Println(out)
	return nil
}

func (a *App) Models(ctx context.Context) error {
	m, err := a.api.Models(ctx)
	if err != nil {
		return err
	}
	for _, name := range m.Models {
		fmt.Println(" ", name)
	}
	fmt.Printf("default: %s\n", m.Default)
	return nil
}
