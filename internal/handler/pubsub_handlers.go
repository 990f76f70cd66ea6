package handler

import (
	"redserver/internal/protocol"
	"redserver/internal/storage"
)

func (h *CommandHandler) registerPubSubCommands() {
	h.commands["SUBSCRIBE"] = cmdSubscribe
	h.commands["UNSUBSCRIBE"] = cmdUnsubscribe
	h.commands["PSUBSCRIBE"] = cmdPSubscribe
	h.commands["PUNSUBSCRIBE"] = cmdPUnsubscribe
	h.commands["PUBLISH"] = cmdPublish
}

func (h *CommandHandler) ensureSubscriber(c *Client) *storage.Subscriber {
	if c.Sub == nil {
		c.Sub = &storage.Subscriber{ID: clientSubID(c.ID), Channels: make(chan *storage.Message, 64)}
		go h.pumpSubscriber(c)
	}
	return c.Sub
}

// pumpSubscriber forwards queued pub/sub messages to the client's
// connection, running for the lifetime of the subscriber's channel.
func (h *CommandHandler) pumpSubscriber(c *Client) {
	for msg := range c.Sub.Channels {
		var frame []byte
		switch msg.Type {
		case "pmessage":
			frame = protocol.EncodeStringArray([]string{msg.Type, msg.Pattern, msg.Channel, msg.Payload})
		default:
			frame = protocol.EncodeStringArray([]string{msg.Type, msg.Channel, msg.Payload})
		}
		if _, err := c.Conn.Write(frame); err != nil {
			return
		}
	}
}

// subReply encodes one (un)subscribe confirmation frame: kind, name, count.
func subReply(kind, name string, count int) []byte {
	return protocol.EncodeRawArray([][]byte{
		protocol.EncodeBulkString(kind),
		protocol.EncodeBulkString(name),
		protocol.EncodeInteger(int64(count)),
	})
}

func cmdSubscribe(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'subscribe' command")
	}
	sub := h.ensureSubscriber(c)
	var out []byte
	for _, ch := range args[1:] {
		h.store.PubSub.Subscribe(sub.ID, sub, ch)
		c.SubChannels[ch] = true
		out = append(out, subReply("subscribe", ch, len(c.SubChannels)+len(c.SubPatterns))...)
	}
	return out
}

func cmdUnsubscribe(h *CommandHandler, c *Client, args []string) []byte {
	if c.Sub == nil {
		return subReply("unsubscribe", "", 0)
	}
	channels := args[1:]
	if len(channels) == 0 {
		for ch := range c.SubChannels {
			channels = append(channels, ch)
		}
	}
	var out []byte
	for _, ch := range channels {
		h.store.PubSub.Unsubscribe(c.Sub.ID, ch)
		delete(c.SubChannels, ch)
		out = append(out, subReply("unsubscribe", ch, len(c.SubChannels)+len(c.SubPatterns))...)
	}
	return out
}

func cmdPSubscribe(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) < 2 {
		return protocol.EncodeError("ERR wrong number of arguments for 'psubscribe' command")
	}
	sub := h.ensureSubscriber(c)
	var out []byte
	for _, p := range args[1:] {
		h.store.PubSub.PSubscribe(sub.ID, sub, p)
		c.SubPatterns[p] = true
		out = append(out, subReply("psubscribe", p, len(c.SubChannels)+len(c.SubPatterns))...)
	}
	return out
}

func cmdPUnsubscribe(h *CommandHandler, c *Client, args []string) []byte {
	if c.Sub == nil {
		return subReply("punsubscribe", "", 0)
	}
	patterns := args[1:]
	if len(patterns) == 0 {
		for p := range c.SubPatterns {
			patterns = append(patterns, p)
		}
	}
	var out []byte
	for _, p := range patterns {
		h.store.PubSub.PUnsubscribe(c.Sub.ID, p)
		delete(c.SubPatterns, p)
		out = append(out, subReply("punsubscribe", p, len(c.SubChannels)+len(c.SubPatterns))...)
	}
	return out
}

func cmdPublish(h *CommandHandler, c *Client, args []string) []byte {
	if len(args) != 3 {
		return protocol.EncodeError("ERR wrong number of arguments for 'publish' command")
	}
	n := h.store.PubSub.Publish(args[1], args[2])
	return protocol.EncodeInteger(int64(n))
}
