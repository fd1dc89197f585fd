package commands

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var ErrGenerateBillCommandIsNotConstructed = errors.New(
	"GenerateBillCommand must be created via NewGenerateBillCommand constructor",
)

// GenerateBillCommand represents a request to consolidate a customer's
// completed orders into a bill. The customer is identified by the email
// snapshotted onto their orders at creation time.
type GenerateBillCommand struct { //nolint:recvcheck //using for validation
	customerEmail string

	guard guard.ConstructorGuard
}

// NewGenerateBillCommand creates a command to bill a customer's completed orders.
func NewGenerateBillCommand(customerEmail string) (GenerateBillCommand, error) {
	cmd := GenerateBillCommand{
		guard: guard.NewConstructorGuard(),
	}

	if customerEmail == "" {
		return GenerateBillCommand{}, ErrCustomerEmailIsRequired
	}
	cmd.customerEmail = customerEmail

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateBillCommand) Validate() error {
	return c.guard.Validate(ErrGenerateBillCommandIsNotConstructed)
}

// CustomerEmail returns the billing identity, matched case-insensitively.
func (c GenerateBillCommand) CustomerEmail() string {
	return c.customerEmail
}
