package types

// Client -> Server

// Names may not contain the token delimiter "|" (0x7C): such pairs would
// produce reveal links that never decode.
type CreateExchangeRequest struct {
	Names   []string `json:"names" validate:"dive,max=100,excludes=0x7C"`
	Message string   `json:"message,omitempty" validate:"max=1000"`
}

type SetMessageRequest struct {
	Message string `json:"message" validate:"max=1000"`
}

// Server -> Client

type ParticipantLink struct {
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to"`
	Token      string `json:"token"`
	RevealURL  string `json:"reveal_url"`
	ShareURL   string `json:"share_url"` // wa.me deep link
}

type ExchangeResponse struct {
	Code         string            `json:"code"`
	Language     string            `json:"language"`
	Message      string            `json:"message"`
	Participants []ParticipantLink `json:"participants"`
}

type RevealResponse struct {
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to"`
	Title      string `json:"title"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
