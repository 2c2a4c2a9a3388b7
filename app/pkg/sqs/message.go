package sqs

import (
	"encoding/json"
	"errors"
	"fmt"

	"backend/insurance-platform/app/database/constant/job"
)

// Message is the body of a claim-management event
type Message struct {
	Type    job.EventType   `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ClaimEventPayload is the part of every claim event the listener checks.
type ClaimEventPayload struct {
	ClaimID string `json:"claim_id"`
}

var ErrInvalidMessage = errors.New("invalid message")

// ParseMessage decodes and checks a message body. Errors wrap ErrInvalidMessage.
func ParseMessage(body string) (*Message, error) {
	var msg Message
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	if msg.Type == "" {
		return nil, fmt.Errorf("%w: missing 'type' field", ErrInvalidMessage)
	}
	if msg.Type.ToJobType() == "" {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidMessage, msg.Type)
	}
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return nil, fmt.Errorf("%w: missing 'payload' field", ErrInvalidMessage)
	}

	var payload ClaimEventPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrInvalidMessage, err)
	}
	if payload.ClaimID == "" {
		return nil, fmt.Errorf("%w: payload is missing claim_id", ErrInvalidMessage)
	}

	return &msg, nil
}
