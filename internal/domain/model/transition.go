package model

// OrderAction is an operation that may move an order between statuses.
type OrderAction string

const (
	ActionCreate          OrderAction = "create"
	ActionSetPrice        OrderAction = "set_price"
	ActionPay             OrderAction = "pay"
	ActionShip            OrderAction = "ship"
	ActionConfirmDelivery OrderAction = "confirm_delivery"
	ActionCancel          OrderAction = "cancel"
	ActionRate            OrderAction = "rate"
)

// Party identifies a side of an order.
type Party uint8

const (
	PartyBuyer Party = 1 << iota
	PartySeller
)

// Has reports whether p includes every bit of other.
func (p Party) Has(other Party) bool {
	return other != 0 && p&other == other
}

// InitialStatus is the status of every newly created order.
const InitialStatus = OrderStatusNegotiating

var transitions = map[OrderStatus]map[OrderAction]OrderStatus{
	OrderStatusNegotiating: {
		ActionSetPrice: OrderStatusPending,
		ActionCancel:   OrderStatusCancelled,
	},
	OrderStatusPending: {
		ActionPay:    OrderStatusPaid,
		ActionCancel: OrderStatusCancelled,
	},
	OrderStatusPaid: {
		ActionShip: OrderStatusShipped,
	},
	OrderStatusShipped: {
		ActionConfirmDelivery: OrderStatusDelivered,
	},
	OrderStatusDelivered: {
		ActionRate: OrderStatusDelivered,
	},
	OrderStatusCancelled: {},
}

var actionParties = map[OrderAction]Party{
	ActionCreate:          PartyBuyer,
	ActionSetPrice:        PartySeller,
	ActionPay:             PartyBuyer,
	ActionShip:            PartySeller,
	ActionConfirmDelivery: PartyBuyer,
	ActionCancel:          PartyBuyer | PartySeller,
	ActionRate:            PartyBuyer,
}

var allStatuses = []OrderStatus{
	OrderStatusNegotiating,
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Statuses lists every order status in lifecycle order.
func Statuses() []OrderStatus {
	out := make([]OrderStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Valid reports whether s belongs to the closed status set.
func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no status change can leave s.
func (s OrderStatus) Terminal() bool {
	for _, to := range transitions[s] {
		if to != s {
			return false
		}
	}
	return true
}

// Next returns the status reached by applying a in s.
func (s OrderStatus) Next(a OrderAction) (OrderStatus, bool) {
	to, ok := transitions[s][a]
	return to, ok
}

// Allows reports whether a may be applied in s.
func (s OrderStatus) Allows(a OrderAction) bool {
	_, ok := s.Next(a)
	return ok
}

// Cancellable reports whether the order can still be cancelled, restoring stock.
func (s OrderStatus) Cancellable() bool {
	return s.Allows(ActionCancel)
}

// PermittedFor reports whether a member of party may perform a.
func (a OrderAction) PermittedFor(party Party) bool {
	allowed, ok := actionParties[a]
	if !ok {
		return false
	}
	return allowed&party != 0
}

// AvailableActions lists the actions party may take on an order in status s.
func AvailableActions(s OrderStatus, party Party) []OrderAction {
	order := []OrderAction{ActionSetPrice, ActionPay, ActionShip, ActionConfirmDelivery, ActionCancel, ActionRate}
	var actions []OrderAction
	for _, a := range order {
		if s.Allows(a) && a.PermittedFor(party) {
			actions = append(actions, a)
		}
	}
	return actions
}
