package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vende6/ChatWithMe/internal/app"
	"github.com/vende6/ChatWithMe/internal/domain"
)

// cli maps command names to handlers. Anything that is not a command is sent
// as a chat message to whatever conversation is open.
type cli struct {
	app      *app.App
	out      io.Writer
	quit     context.CancelFunc
	commands map[string]func(ctx context.Context, args []string)
}

func newCLI(application *app.App, out io.Writer, quit context.CancelFunc) *cli {
	c := &cli{app: application, out: out, quit: quit}
	c.commands = map[string]func(ctx context.Context, args []string){
		"/help":     c.cmdHelp,
		"/contacts": c.cmdContacts,
		"/open":     c.cmdOpen,
		"/close":    c.cmdClose,
		"/invite":   c.cmdInvite,
		"/accept":   c.cmdAccept,
		"/decline":  c.cmdDecline,
		"/logout":   c.cmdLogout,
		"/quit":     c.cmdQuit,
	}
	return c
}

func (c *cli) loop(ctx context.Context, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			fields := strings.Fields(line)
			handler, ok := c.commands[fields[0]]
			if !ok {
				fmt.Fprintf(c.out, "unknown command %s\n", fields[0])
				continue
			}
			handler(ctx, fields[1:])
			if ctx.Err() != nil {
				return
			}
			continue
		}

		c.app.Dispatcher().SendMessage(ctx, line)
	}
}

func (c *cli) cmdHelp(context.Context, []string) {
	fmt.Fprintln(c.out, `/contacts               refresh and list contacts
/open <n>               open a private chat with contact n
/close                  close the private chat
/invite <n> <activity> [message]   invite contact n to an activity
/accept | /decline      answer a pending invitation
/logout                 forget the stored identity and exit
/quit                   exit`)
	fmt.Fprintf(c.out, "activities: %s\n", strings.Join(c.app.Dispatcher().Activities(), ", "))
}

func (c *cli) cmdContacts(ctx context.Context, _ []string) {
	if err := c.app.Dispatcher().RefreshContacts(ctx); err != nil {
		fmt.Fprintf(c.out, "could not refresh contacts: %v\n", err)
	}
}

func (c *cli) cmdOpen(ctx context.Context, args []string) {
	user, ok := c.contactArg(args)
	if !ok {
		return
	}
	c.app.Dispatcher().OpenPrivateChat(user)
	fmt.Fprintf(c.out, "private chat with %s opened\n", user.Username)
}

func (c *cli) cmdClose(context.Context, []string) {
	c.app.Dispatcher().ClosePrivateChat()
	fmt.Fprintln(c.out, "private chat closed")
}

func (c *cli) cmdInvite(ctx context.Context, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(c.out, "usage: /invite <n> <activity> [message]")
		return
	}
	user, ok := c.contactArg(args[:1])
	if !ok {
		return
	}
	activity := args[1]
	message := strings.Join(args[2:], " ")

	d := c.app.Dispatcher()
	d.BeginInvitation(user)
	d.SelectActivity(activity)
	if draft, ok := c.app.Store().Draft(); !ok || draft.Activity == "" {
		fmt.Fprintf(c.out, "unknown activity %q (pick one of: %s)\n", activity, strings.Join(d.Activities(), ", "))
		d.CancelInvitation()
		return
	}
	d.ProposeInvitation(ctx, message)
}

func (c *cli) cmdAccept(ctx context.Context, _ []string) {
	c.app.Dispatcher().RespondToInvitation(ctx, true)
}

func (c *cli) cmdDecline(ctx context.Context, _ []string) {
	c.app.Dispatcher().RespondToInvitation(ctx, false)
}

func (c *cli) cmdLogout(ctx context.Context, _ []string) {
	if err := c.app.Logout(); err != nil {
		fmt.Fprintf(c.out, "logout failed: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "identity cleared")
	c.quit()
}

func (c *cli) cmdQuit(context.Context, []string) {
	c.quit()
}

// contactArg resolves a 1-based contact index argument.
func (c *cli) contactArg(args []string) (domain.User, bool) {
	if len(args) < 1 {
		fmt.Fprintln(c.out, "contact number required (see /contacts)")
		return domain.User{}, false
	}
	n, err := strconv.Atoi(args[0])
	contacts := c.app.Store().Contacts()
	if err != nil || n < 1 || n > len(contacts) {
		fmt.Fprintf(c.out, "no contact %q (see /contacts)\n", args[0])
		return domain.User{}, false
	}
	return contacts[n-1].User, true
}
