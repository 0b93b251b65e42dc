package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vende6/ChatWithMe/config"
	"github.com/vende6/ChatWithMe/internal/api"
	"github.com/vende6/ChatWithMe/internal/session"
	"github.com/vende6/ChatWithMe/internal/ws"
	"github.com/vende6/ChatWithMe/pkg/logger"
	"github.com/vende6/ChatWithMe/service"
)

// App wires the client core together: durable identity, session store,
// one-shot backend, dispatcher and the push channel.
type App struct {
	cfg        config.Config
	log        logger.Logger
	identity   *session.IdentityStore
	store      *session.Store
	backend    *api.Client
	dispatcher *service.Dispatcher
	pushClient *ws.Client
}

// NewApp initializes the client's dependencies. The presenter is supplied by
// the caller; everything else comes from config.
func NewApp(cfg config.Config, presenter service.Presenter) (*App, error) {
	log := logger.NewLogger(cfg.LogLevel)
	log.Infof("Initializing client components...")

	identity, err := session.OpenIdentityStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open identity store: %w", err)
	}

	store := session.NewStore()
	backend := api.NewClient(cfg.ServerURL)
	dispatcher := service.NewDispatcher(store, backend, presenter, log)

	return &App{
		cfg:        cfg,
		log:        log,
		identity:   identity,
		store:      store,
		backend:    backend,
		dispatcher: dispatcher,
	}, nil
}

// Dispatcher exposes the user-action entry points.
func (a *App) Dispatcher() *service.Dispatcher {
	return a.dispatcher
}

// Store exposes the session state, read-only use intended.
func (a *App) Store() *session.Store {
	return a.store
}

// HasIdentity reports whether a stored identity exists, which decides
// between the login flow and direct session activation.
func (a *App) HasIdentity() (bool, error) {
	_, found, err := a.identity.Load()
	return found, err
}

// Start activates the session and blocks on the push channel until ctx ends.
// When no identity is stored, username is registered with the server and the
// assigned identity persisted; otherwise username is ignored.
func (a *App) Start(ctx context.Context, username string) error {
	user, found, err := a.identity.Load()
	if err != nil {
		return err
	}
	if !found {
		if username == "" {
			return fmt.Errorf("no stored identity and no username to register")
		}
		user, err = a.backend.CreateUser(ctx, username, "")
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		if err := a.identity.Save(user); err != nil {
			return err
		}
		a.log.Infof("Registered as %s on side %s", user.Username, user.ChatSide)
	}
	a.store.SetCurrentUser(user)

	// Fresh state per session activation; nothing carries over.
	if activities, err := a.backend.Activities(ctx); err == nil {
		a.dispatcher.SetActivities(activities)
	} else {
		a.log.Errorf("Could not fetch activity catalog: %v", err)
	}
	if err := a.dispatcher.RefreshContacts(ctx); err != nil {
		a.log.Errorf("Could not fetch contacts: %v", err)
	}
	if history, err := a.backend.PublicHistory(ctx, a.cfg.HistoryLimit); err == nil {
		a.dispatcher.ShowHistory(history)
	} else {
		a.log.Errorf("Could not fetch public history: %v", err)
	}

	pushClient, err := ws.Dial(ws.Config{
		ServerURL:      a.cfg.ServerURL,
		UserID:         user.ID,
		ReconnectDelay: time.Duration(a.cfg.ReconnectMS) * time.Millisecond,
	}, a.dispatcher.OnInboundEvent, a.log)
	if err != nil {
		return fmt.Errorf("failed to set up push channel: %w", err)
	}
	a.pushClient = pushClient

	a.log.Infof("Session active for %s", user.Username)
	pushClient.Run(ctx)
	return nil
}

// Logout clears the stored identity so the next start goes through the
// login flow again.
func (a *App) Logout() error {
	return a.identity.Clear()
}

// Stop tears down the push channel and closes the identity store.
func (a *App) Stop() {
	if a.pushClient != nil {
		a.pushClient.Close()
	}
	if err := a.identity.Close(); err != nil {
		a.log.Errorf("Identity store close error: %v", err)
	}
	a.log.Infof("Client stopped")
}
