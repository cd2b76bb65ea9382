package ports

// Metrics records what happens to outbound deliveries.
type Metrics interface {
	// DeliveryAttempted is called once per HTTP attempt; statusCode is 0 on transport errors.
	DeliveryAttempted(statusCode int)
	DeliveryRateLimited()
}
