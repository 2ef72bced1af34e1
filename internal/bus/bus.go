// Package bus fans hand-completion events out over NATS, grounded on
// framework/node/nats_client.go.
package bus

import (
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"

	"mahjong/internal/logging"
)

// ErrNotConnected mirrors framework/node/errors.go's sentinel.
var ErrNotConnected = errors.New("bus: nats client not connected")

// HandFinished is published once a hand reaches a terminal phase (win or
// draw), carrying just enough for a spectator/ratings consumer — never the
// concealed hands of players who didn't win.
type HandFinished struct {
	TableID     string         `json:"tableID"`
	RoundNumber int            `json:"roundNumber"`
	DealerIndex int            `json:"dealerIndex"`
	EndType     string         `json:"endType"` // "win" or "draw"
	Winner      int            `json:"winner,omitempty"`
	Tai         int            `json:"tai,omitempty"`
	Yaku        []string       `json:"yaku,omitempty"`
	Payments    map[int]int    `json:"payments,omitempty"`
}

// Client wraps a single NATS connection subscribed to one subject, mirroring
// NatsClient's Run/Subscribe/Close shape.
type Client struct {
	subject  string
	conn     *nats.Conn
	readChan chan []byte
}

func New(subject string, readChan chan []byte) *Client {
	return &Client{subject: subject, readChan: readChan}
}

func (c *Client) IsConnected() bool { return c.conn != nil && c.conn.IsConnected() }

func (c *Client) Run(url string) error {
	logging.Info("bus: connecting to nats at %s", url)
	conn, err := nats.Connect(url)
	if err != nil {
		logging.Error("bus: nats connect failed: %v", err)
		return err
	}
	c.conn = conn
	go c.subscribe()
	logging.Info("bus: connected, subject=%s", c.subject)
	return nil
}

func (c *Client) subscribe() {
	_, err := c.conn.Subscribe(c.subject, func(msg *nats.Msg) {
		if c.readChan != nil {
			c.readChan <- msg.Data
		}
	})
	if err != nil {
		logging.Error("bus: subscribe failed: %v", err)
	}
}

// PublishHandFinished JSON-encodes and publishes ev on the client's subject.
func (c *Client) PublishHandFinished(ev HandFinished) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return c.conn.Publish(c.subject, data)
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	c.conn.Close()
	logging.Info("bus: nats connection closed")
	return nil
}
