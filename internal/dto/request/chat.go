package request

type ChatTurn struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history,omitempty" validate:"max=20,dive"`
}
