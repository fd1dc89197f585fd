package eventbus

import (
	"encoding/json"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// envelope is the wire format relayed between instances over Redis pub/sub.
// Origin carries the publishing instance's identity so an instance can skip
// messages it already delivered locally.
type envelope struct {
	Origin  string    `json:"origin"`
	Kind    string    `json:"kind"`
	Message string    `json:"message"`
	Order   *orderDTO `json:"order,omitempty"`
}

type orderDTO struct {
	ID            string         `json:"id"`
	Number        string         `json:"number"`
	CustomerID    string         `json:"customerId"`
	CustomerEmail string         `json:"customerEmail"`
	Instructions  string         `json:"instructions,omitempty"`
	Status        string         `json:"status"`
	StaffID       *string        `json:"staffId,omitempty"`
	Items         []orderItemDTO `json:"items"`
	CreatedAt     time.Time      `json:"createdAt"`
	CompletedAt   *time.Time     `json:"completedAt,omitempty"`
}

type orderItemDTO struct {
	MenuItemID     string `json:"menuItemId"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

func encodeEvent(origin string, event ports.Event) ([]byte, error) {
	env := envelope{
		Origin:  origin,
		Kind:    string(event.Kind),
		Message: event.Message,
	}

	if event.Order != nil {
		dto := orderDTO{
			ID:            event.Order.ID().String(),
			Number:        event.Order.Number(),
			CustomerID:    event.Order.CustomerID().String(),
			CustomerEmail: event.Order.CustomerEmail(),
			Instructions:  event.Order.Instructions(),
			Status:        event.Order.Status().String(),
			CreatedAt:     event.Order.CreatedAt(),
			CompletedAt:   event.Order.CompletedAt(),
		}
		if staffID := event.Order.AssignedStaff(); staffID != nil {
			s := staffID.String()
			dto.StaffID = &s
		}
		for _, item := range event.Order.Items() {
			dto.Items = append(dto.Items, orderItemDTO{
				MenuItemID:     item.MenuItemID().String(),
				Name:           item.Name(),
				Quantity:       item.Quantity(),
				UnitPriceCents: item.UnitPriceCents(),
			})
		}
		env.Order = &dto
	}

	return json.Marshal(env)
}

func decodeEvent(payload []byte) (string, ports.Event, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return "", ports.Event{}, err
	}

	event := ports.Event{
		Kind:    ports.EventKind(env.Kind),
		Message: env.Message,
	}

	if env.Order != nil {
		aggregate, err := env.Order.toDomain()
		if err != nil {
			return "", ports.Event{}, err
		}
		event.Order = aggregate
	}

	return env.Origin, event, nil
}

func (dto *orderDTO) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.ID)
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromString(dto.CustomerID)
	if err != nil {
		return nil, err
	}

	var staffID *kernel.UUID
	if dto.StaffID != nil {
		sID, err := kernel.UUIDFromString(*dto.StaffID)
		if err != nil {
			return nil, err
		}
		staffID = &sID
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, err := kernel.UUIDFromString(itemDTO.MenuItemID)
		if err != nil {
			return nil, err
		}
		item, err := order.NewItem(menuItemID, itemDTO.Name, itemDTO.Quantity, itemDTO.UnitPriceCents)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		customerID,
		dto.CustomerEmail,
		items,
		dto.Instructions,
		status,
		staffID,
		dto.CreatedAt,
		dto.CompletedAt,
	)
}
