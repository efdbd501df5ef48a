package terminal

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/simaogato/atm-backend/internal/usecase/operation"
)

// ErrQuit is returned by a Prompter when the user leaves the ATM
var ErrQuit = errors.New("user quit")

// kindExit is the menu entry that ends the loop
const kindExit operation.Kind = 0

// MenuItem is one entry of the ATM menu
type MenuItem struct {
	Label string
	Kind  operation.Kind
}

// Prompter collects input from the person at the ATM
type Prompter interface {
	Choose(title string, items []MenuItem) (MenuItem, error)
	Ask(title string, secret bool) (string, error)
}

// HuhPrompter prompts on the terminal with huh fields
type HuhPrompter struct{}

func (HuhPrompter) Choose(title string, items []MenuItem) (MenuItem, error) {
	options := make([]huh.Option[operation.Kind], 0, len(items))
	for _, item := range items {
		options = append(options, huh.NewOption(item.Label, item.Kind))
	}

	var chosen operation.Kind
	err := huh.NewSelect[operation.Kind]().
		Title(title).
		Options(options...).
		Value(&chosen).
		Run()
	if err != nil {
		return MenuItem{}, quitOn(err)
	}

	for _, item := range items {
		if item.Kind == chosen {
			return item, nil
		}
	}
	return MenuItem{}, ErrQuit
}

func (HuhPrompter) Ask(title string, secret bool) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Value(&value)
	if secret {
		input = input.EchoMode(huh.EchoModePassword)
	}

	if err := input.Run(); err != nil {
		return "", quitOn(err)
	}
	return value, nil
}

func quitOn(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrQuit
	}
	return err
}
