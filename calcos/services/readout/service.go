//go:build !tinygo

package readout

import (
	"pocketcalc/calcos/kernel"
	"pocketcalc/calcos/proto"
)

// Service shows every MsgReadout it receives on a Terminal.
type Service struct {
	term *Terminal
	ep   kernel.Capability
}

func New(term *Terminal, ep kernel.Capability) *Service {
	return &Service{term: term, ep: ep}
}

// Run serves until the endpoint is closed or a MsgAppShutdown arrives.
func (s *Service) Run(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppShutdown:
			s.term.Close()
			return
		case proto.MsgReadout:
			r, ok := proto.DecodeReadoutPayload(msg.Payload())
			if !ok {
				continue
			}
			_ = s.term.Show(r)
		}
	}
}
