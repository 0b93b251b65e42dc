package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/service"
)

// terminalPresenter renders core events as terminal lines. The core hands it
// one event per message together with the surfaces it belongs to; the
// terminal collapses the two public room projections into a single line.
type terminalPresenter struct {
	mu  sync.Mutex
	out io.Writer
}

func newTerminalPresenter(out io.Writer) *terminalPresenter {
	return &terminalPresenter{out: out}
}

func (p *terminalPresenter) ShowMessage(m domain.Message, own bool, surfaces []service.Surface) {
	p.mu.Lock()
	defer p.mu.Unlock()

	label := "both rooms"
	for _, s := range surfaces {
		if s.Kind == service.SurfacePrivate {
			label = "private:" + s.Peer.Username
			break
		}
	}
	marker := ""
	if own {
		marker = " (you)"
	}
	fmt.Fprintf(p.out, "[%s] %s%s: %s\n", label, m.Sender.Username, marker, m.Content)
}

func (p *terminalPresenter) ShowInvitation(inv domain.Invitation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "*** %s invites you to %s", inv.FromUser.Username, inv.Activity)
	if inv.Message != "" {
		fmt.Fprintf(p.out, ": %q", inv.Message)
	}
	fmt.Fprintln(p.out, " (/accept or /decline)")
}

func (p *terminalPresenter) ShowNotice(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "-- %s\n", text)
}

func (p *terminalPresenter) ContactsUpdated(contacts []domain.Contact) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, c := range contacts {
		fmt.Fprintf(p.out, "%2d. %s [%s] %s\n", i+1, c.User.Username, c.User.ChatSide, c.Summary)
	}
}

func (p *terminalPresenter) ClearInput() {
	// A line-based terminal has no compose box to clear.
}
