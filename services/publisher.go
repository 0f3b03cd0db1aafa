package services

import "fmt"

// Publisher fans an event out to every session subscribed to a channel.
// Delivery is best-effort: by the time anything publishes, the state
// change is already committed, so a delivery problem never fails the
// operation that triggered it.
type Publisher interface {
	Publish(channel, event string, payload any)
}

const (
	ChannelAdmin     = "admin"
	ChannelCustomers = "customers"

	EventNewOrder           = "new_order"
	EventOrderUpdated       = "order_updated"
	EventOrderStatusUpdated = "order_status_updated"
	EventMenuUpdated        = "menu_updated"
	EventItemUnavailable    = "item_unavailable"
)

// TableChannel names the room scoped to one physical table.
func TableChannel(tableNumber int) string {
	return fmt.Sprintf("table_%d", tableNumber)
}
