package room

import (
	"fmt"

	"github.com/gorilla/websocket"
)

const clientBufferSize = 64

// Client is a client connected to a game via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	remoteAddr string
	dealer     *Dealer
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		Conn:       conn,
		send:       make(chan interface{}, clientBufferSize),
		Close:      make(chan string, 1),
		remoteAddr: remoteAddr,
	}
}

// Send queues a message for the client
// It returns false if the client's buffer is full
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client and game
func (c *Client) String() string {
	if c.dealer == nil {
		return c.remoteAddr
	}

	return fmt.Sprintf("%s:%s", c.remoteAddr, c.dealer.ID())
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *Message) {
	if c.dealer == nil {
		c.Send(newErrorResponse(msg.Context, ErrNotFound))
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
