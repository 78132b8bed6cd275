package logging

// ServiceName tags every log line.
const ServiceName = "spyfall"

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Game
	FieldChatID   = "chat_id"
	FieldPlayerID = "player_id"
	FieldState    = "state"
	FieldSlot     = "slot"
	FieldSignal   = "signal"
	FieldOutcome  = "outcome"

	FieldService = "service"
)
