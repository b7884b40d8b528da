package node

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// statusResponse is the node's status endpoint payload.
type statusResponse struct {
	Channels []struct {
		ID         string `json:"id"`
		Usable     bool   `json:"usable"`
		Terminated bool   `json:"terminated"`
	} `json:"channels"`
	Connection string `json:"connection"`
}

// Poller turns the node's status endpoint into the state streams the Gate
// consumes. One poller feeds one pipeline invocation's gate.
type Poller struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *slog.Logger
}

// NewPoller creates a poller for the node status endpoint.
func NewPoller(url string, interval time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Gate starts polling and returns a Gate fed by the poll results. Polling
// stops when ctx is cancelled; the streams close with it.
func (p *Poller) Gate(ctx context.Context) *Gate {
	connections := make(chan ConnectionState, 1)
	channels := make(chan []Channel, 1)

	go func() {
		defer close(connections)
		defer close(channels)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			status, err := p.fetch(ctx)
			if err != nil {
				p.logger.Warn("node status poll failed", "error", err)
			} else {
				// Non-blocking sends: the gate stops draining one stream
				// once it has the value it needs, and the next poll will
				// deliver a fresher snapshot anyway.
				select {
				case connections <- status.connectionState():
				default:
				}
				select {
				case channels <- status.channelList():
				default:
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return NewGate(connections, channels, p.logger)
}

func (p *Poller) fetch(ctx context.Context) (*statusResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create status request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return &status, nil
}

func (s *statusResponse) connectionState() ConnectionState {
	switch s.Connection {
	case "established":
		return ConnectionEstablished
	case "connecting":
		return ConnectionConnecting
	default:
		return ConnectionClosed
	}
}

func (s *statusResponse) channelList() []Channel {
	channels := make([]Channel, 0, len(s.Channels))
	for _, ch := range s.Channels {
		channels = append(channels, Channel{ID: ch.ID, Usable: ch.Usable, Terminated: ch.Terminated})
	}
	return channels
}
