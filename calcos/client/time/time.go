package time

import (
	"fmt"

	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
)

// Client issues sleep requests to the time service. A Client belongs to one
// task; its reply endpoint is allocated on first use.
type Client struct {
	timeCap kernel.Capability
	reply   kernel.Capability
	nextID  uint32
}

func New(timeCap kernel.Capability) *Client {
	return &Client{timeCap: timeCap}
}

// Sleep blocks the calling task until the time service reports that dt ticks
// have passed.
func (c *Client) Sleep(ctx *kernel.Context, dt uint32) error {
	if ctx == nil {
		return fmt.Errorf("time sleep: nil context")
	}
	if !c.reply.Valid() {
		c.reply = ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		if !c.reply.Valid() {
			return fmt.Errorf("time sleep: allocate reply endpoint")
		}
	}

	c.nextID++
	if c.nextID == 0 {
		c.nextID++
	}
	id := c.nextID

	res := ctx.SendToCapRetry(c.timeCap, uint16(proto.MsgSleep), proto.SleepPayload(id, dt), c.reply.Restrict(kernel.RightSend), 16)
	if res != kernel.SendOK {
		return fmt.Errorf("time sleep send: %s", res)
	}

	recv := c.reply.Restrict(kernel.RightRecv)
	for {
		msg, ok := ctx.Recv(recv)
		if !ok {
			return fmt.Errorf("time sleep: reply endpoint closed")
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgWake:
			got, ok := proto.DecodeWakePayload(msg.Payload())
			if !ok {
				return fmt.Errorf("time wake: bad payload")
			}
			if got == id {
				return nil
			}
		case proto.MsgError:
			code, ref, got, _, ok := proto.DecodeErrorPayload(msg.Payload())
			if !ok {
				return fmt.Errorf("time error: bad payload")
			}
			// Stale replies from an earlier request are skipped.
			if got == id || got == 0 {
				return fmt.Errorf("time error: code=%s ref=%s", code, ref)
			}
		}
	}
}
