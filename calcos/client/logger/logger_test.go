package logger

import (
	"strings"
	"testing"

	"pocketcalc/calcos/kernel"
)

type logOnce struct {
	to   kernel.Capability
	line string
	res  chan kernel.SendResult
}

func (t *logOnce) Run(ctx *kernel.Context) { t.res <- Log(ctx, t.to, t.line) }

func TestLogTruncatesLongLines(t *testing.T) {
	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	res := make(chan kernel.SendResult, 1)
	k.AddTask(&logOnce{to: ep.Restrict(kernel.RightSend), line: strings.Repeat("7", 300), res: res})

	if got := <-res; got != kernel.SendOK {
		t.Fatalf("Log = %s, want ok", got)
	}

	probe := &recvOnce{from: ep.Restrict(kernel.RightRecv), n: make(chan int, 1)}
	k.AddTask(probe)
	if n := <-probe.n; n != kernel.MaxMessageBytes {
		t.Fatalf("payload len = %d, want %d", n, kernel.MaxMessageBytes)
	}
}

type recvOnce struct {
	from kernel.Capability
	n    chan int
}

func (t *recvOnce) Run(ctx *kernel.Context) {
	msg, ok := ctx.Recv(t.from)
	if !ok {
		t.n <- -1
		return
	}
	t.n <- len(msg.Payload())
}

func TestLogNilContext(t *testing.T) {
	if got := Log(nil, kernel.Capability{}, "x"); got != kernel.SendErrInvalidFromCap {
		t.Fatalf("Log(nil) = %s", got)
	}
	if got := LogRetry(nil, kernel.Capability{}, "x", 3); got != kernel.SendErrInvalidFromCap {
		t.Fatalf("LogRetry(nil) = %s", got)
	}
}
