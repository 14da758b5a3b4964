package types

// PublishDestination determines where domain events are published
type PublishDestination string

const (
	PublishToMemory PublishDestination = "memory"
	PublishToKafka  PublishDestination = "kafka"
)

const (
	EventKPIPopulated = "kpi.populated"
)
