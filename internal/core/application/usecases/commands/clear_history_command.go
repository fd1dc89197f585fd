package commands

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrClearHistoryCommandIsNotConstructed = errors.New(
	"ClearHistoryCommand must be created via NewClearHistoryCommand constructor",
)

// ClearHistoryCommand represents an admin request to purge historical orders
// (billed and cancelled) from the store.
type ClearHistoryCommand struct {
	guard guard.ConstructorGuard
}

// NewClearHistoryCommand creates a command to purge order history.
func NewClearHistoryCommand() ClearHistoryCommand {
	return ClearHistoryCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ClearHistoryCommand) Validate() error {
	return c.guard.Validate(ErrClearHistoryCommandIsNotConstructed)
}
