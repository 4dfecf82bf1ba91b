package model

// StateKind enumerates the closed set of UI-facing states. Consumers are
// expected to switch over all of them.
type StateKind string

const (
	StateIdle    StateKind = "idle"
	StateLoading StateKind = "loading"
	StateSuccess StateKind = "success"
	StateEmpty   StateKind = "empty"
	StateError   StateKind = "error"
)

// UiState is the tagged union delivered to presentation consumers. Data is
// set only for StateSuccess, Message only for StateEmpty and StateError.
type UiState struct {
	State   StateKind   `json:"state"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Idle builds the idle state.
func Idle() UiState { return UiState{State: StateIdle} }

// Loading builds the loading state.
func Loading() UiState { return UiState{State: StateLoading} }

// Success builds a success state wrapping the payload.
func Success(data interface{}) UiState { return UiState{State: StateSuccess, Data: data} }

// Empty builds an empty state with a user-visible message.
func Empty(message string) UiState { return UiState{State: StateEmpty, Message: message} }

// Errored builds an error state with a user-visible message.
func Errored(message string) UiState { return UiState{State: StateError, Message: message} }
