// Package node exposes the payment-channel layer's connection and channel
// state to the withdrawal pipeline. The node itself is an external system;
// this package only observes it.
package node

import (
	"context"
	"fmt"
	"log/slog"
)

// ConnectionState describes the link to the node's Lightning peer.
type ConnectionState int

const (
	ConnectionClosed ConnectionState = iota
	ConnectionConnecting
	ConnectionEstablished
)

func (s ConnectionState) String() string {
	switch s {
	case ConnectionClosed:
		return "closed"
	case ConnectionConnecting:
		return "connecting"
	case ConnectionEstablished:
		return "established"
	default:
		return "unknown"
	}
}

// Channel is one payment channel's readiness snapshot.
type Channel struct {
	ID         string
	Usable     bool
	Terminated bool
}

// ready reports whether the channel no longer blocks payments: either it can
// route them or it is permanently out of the picture.
func (c Channel) ready() bool {
	return c.Usable || c.Terminated
}

// Gate blocks the pipeline until the channel layer can carry a payment.
// Paying through a non-ready channel is either impossible or unsafe, so the
// claim step must not run before the gate opens.
type Gate struct {
	connections <-chan ConnectionState
	channels    <-chan []Channel
	logger      *slog.Logger
}

// NewGate creates a Gate over the node's state streams.
func NewGate(connections <-chan ConnectionState, channels <-chan []Channel, logger *slog.Logger) *Gate {
	return &Gate{connections: connections, channels: channels, logger: logger}
}

// WaitUntilReady blocks until the peer connection is established and every
// known channel is usable or terminated, in that order. The wait is unbounded
// unless the caller imposes a deadline through ctx.
func (g *Gate) WaitUntilReady(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case state, ok := <-g.connections:
			if !ok {
				return fmt.Errorf("connection state stream closed")
			}
			g.logger.Debug("connection state", "state", state)
			if state == ConnectionEstablished {
				return g.waitForChannels(ctx)
			}
		}
	}
}

func (g *Gate) waitForChannels(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case channels, ok := <-g.channels:
			if !ok {
				return fmt.Errorf("channel state stream closed")
			}
			if allReady(channels) {
				g.logger.Debug("all channels ready", "count", len(channels))
				return nil
			}
			g.logger.Debug("one or more channels not ready", "count", len(channels))
		}
	}
}

func allReady(channels []Channel) bool {
	for _, ch := range channels {
		if !ch.ready() {
			return false
		}
	}
	return true
}
