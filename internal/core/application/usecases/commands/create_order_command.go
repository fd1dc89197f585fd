package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCustomerEmailIsRequired = errors.New("customerEmail is required")
	ErrLinesAreRequired        = errors.New("at least one order line is required")
	ErrQuantityIsInvalid       = errors.New("quantity must be greater than 0")
)

// OrderLine is one requested menu item with its quantity. Prices are not part
// of the request; they are resolved and snapshotted from the catalog during
// handling.
type OrderLine struct {
	ItemID   kernel.UUID
	Quantity int
}

// CreateOrderCommand represents a request to place a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, "diner@example.com",
//	    []OrderLine{{ItemID: pizzaID, Quantity: 2}}, "no onions")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID    kernel.UUID
	customerEmail string
	lines         []OrderLine
	instructions  string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. Validates that
// the customer identity is present and every line has a positive quantity.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	customerEmail string,
	lines []OrderLine,
	instructions string,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		instructions: instructions,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomer(customerID, customerEmail),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// CustomerEmail returns the customer email to snapshot onto the order.
func (c CreateOrderCommand) CustomerEmail() string {
	return c.customerEmail
}

// Lines returns the requested order lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	return c.lines
}

// Instructions returns the optional special instructions text.
func (c CreateOrderCommand) Instructions() string {
	return c.instructions
}

func (c *CreateOrderCommand) setCustomer(customerID kernel.UUID, customerEmail string) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	if customerEmail == "" {
		return ErrCustomerEmailIsRequired
	}

	c.customerID = customerID
	c.customerEmail = customerEmail
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}
	for _, line := range lines {
		if err := line.ItemID.Validate(); err != nil {
			return err
		}
		if line.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
