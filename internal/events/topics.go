package events

// Topic constants for domain events emitted by the register.
const (
	TopicDeliveryReceived  = "delivery.received"
	TopicPurchaseCompleted = "purchase.completed"
	TopicStockLow          = "stock.low"
)
