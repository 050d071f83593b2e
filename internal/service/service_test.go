package service

import (
	"context"
	"errors"
	"sync"
)

// recordingNotifier captures outbound messages for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []sentMessage
}

type sentMessage struct {
	phone   string
	message string
}

func (n *recordingNotifier) Send(_ context.Context, phone, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, sentMessage{phone: phone, message: message})
	return nil
}

func (n *recordingNotifier) sent() []sentMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMessage(nil), n.messages...)
}

// failingNotifier simulates a gateway outage.
type failingNotifier struct{}

func (failingNotifier) Send(context.Context, string, string) error {
	return errors.New("gateway unreachable")
}
