package events

// Topic constants for domain events emitted by the storefront.
const (
	TopicCartUpdated  = "cart.updated"
	TopicCartCleared  = "cart.cleared"
	TopicOrderCreated = "order.created"
)
