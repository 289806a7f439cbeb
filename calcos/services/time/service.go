package timesvc

import (
	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
	"pocketcalc/hal"
)

const maxSleepers = 32

// Clock receives every tick the service observes. *kernel.Kernel satisfies it.
type Clock interface {
	TickTo(seq uint64)
}

type sleeper struct {
	inUse bool
	due   uint64
	id    uint32
	reply kernel.Capability
}

// Service turns HAL ticks into the kernel clock and answers MsgSleep requests
// with MsgWake once the requested number of ticks has passed.
type Service struct {
	ht    hal.Time
	clock Clock
	ep    kernel.Capability

	now      uint64
	sleepers [maxSleepers]sleeper
}

func New(ht hal.Time, clock Clock, ep kernel.Capability) *Service {
	return &Service{ht: ht, clock: clock, ep: ep}
}

// Run serves until the endpoint is closed.
func (s *Service) Run(ctx *kernel.Context) {
	reqs, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	var ticks <-chan uint64
	if s.ht != nil {
		ticks = s.ht.Ticks()
	}

	for {
		select {
		case seq := <-ticks:
			s.advance(ctx, seq)
		case msg, ok := <-reqs:
			if !ok {
				return
			}
			s.handle(ctx, msg)
		}
	}
}

func (s *Service) advance(ctx *kernel.Context, seq uint64) {
	if seq <= s.now {
		return
	}
	s.now = seq
	if s.clock != nil {
		s.clock.TickTo(seq)
	}
	for i := range s.sleepers {
		sl := &s.sleepers[i]
		if !sl.inUse || sl.due > s.now {
			continue
		}
		ctx.SendToCapResult(sl.reply, uint16(proto.MsgWake), proto.WakePayload(sl.id), kernel.Capability{})
		*sl = sleeper{}
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	if proto.Kind(msg.Kind) != proto.MsgSleep || !msg.Cap.Valid() {
		return
	}
	requestID, dt, ok := proto.DecodeSleepPayload(msg.Payload())
	if !ok {
		s.fail(ctx, msg.Cap, proto.ErrBadMessage, 0)
		return
	}
	if dt == 0 {
		ctx.SendToCapResult(msg.Cap, uint16(proto.MsgWake), proto.WakePayload(requestID), kernel.Capability{})
		return
	}
	if !s.schedule(s.now+uint64(dt), requestID, msg.Cap) {
		s.fail(ctx, msg.Cap, proto.ErrOverflow, requestID)
	}
}

func (s *Service) fail(ctx *kernel.Context, reply kernel.Capability, code proto.ErrCode, requestID uint32) {
	payload := proto.ErrorPayload(code, proto.MsgSleep, requestID, nil)
	ctx.SendToCapResult(reply, uint16(proto.MsgError), payload, kernel.Capability{})
}

func (s *Service) schedule(due uint64, requestID uint32, reply kernel.Capability) bool {
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			continue
		}
		s.sleepers[i] = sleeper{inUse: true, due: due, id: requestID, reply: reply}
		return true
	}
	return false
}
