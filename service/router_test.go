package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vende6/ChatWithMe/internal/domain"
	"github.com/vende6/ChatWithMe/internal/session"
	"github.com/vende6/ChatWithMe/service"
)

func newRouter(current domain.User) (*service.Router, *session.Store) {
	store := session.NewStore()
	store.SetCurrentUser(current)
	return service.NewRouter(store), store
}

// Public messages land in both rooms no matter which side the sender or the
// viewer sits on.
func TestPublicMessagesRouteToBothRooms(t *testing.T) {
	router, _ := newRouter(alice)

	for _, sender := range []domain.User{alice, bob} {
		surfaces := router.Route(publicMessage("m1", sender, "hi"))
		require.Len(t, surfaces, 2, "sender side %s", sender.ChatSide)
		assert.Equal(t, service.SurfaceRoomA, surfaces[0].Kind)
		assert.Equal(t, service.SurfaceRoomB, surfaces[1].Kind)
	}
}

func TestPrivateMessageRoutesToOpenThreadOnly(t *testing.T) {
	router, store := newRouter(alice)
	store.OpenPrivateChat(bob)

	// Inbound from the open peer.
	surfaces := router.Route(privateMessage("m1", bob, alice, "hey"))
	require.Len(t, surfaces, 1)
	assert.Equal(t, service.SurfacePrivate, surfaces[0].Kind)
	assert.Equal(t, bob.ID, surfaces[0].Peer.ID)

	// Own message to the open peer.
	surfaces = router.Route(privateMessage("m2", alice, bob, "hey back"))
	require.Len(t, surfaces, 1)
	assert.Equal(t, service.SurfacePrivate, surfaces[0].Kind)
}

// A private message from a third party must not leak into the open thread,
// and is not rendered anywhere.
func TestUnrelatedPrivateMessageNotRendered(t *testing.T) {
	router, store := newRouter(alice)
	store.OpenPrivateChat(bob)

	surfaces := router.Route(privateMessage("m1", carol, alice, "secret"))
	assert.Empty(t, surfaces)
}

func TestPrivateMessageWithNoOpenThreadNotRendered(t *testing.T) {
	router, store := newRouter(alice)

	surfaces := router.Route(privateMessage("m1", bob, alice, "hello?"))
	assert.Empty(t, surfaces)

	// Opening the chat afterwards does not resurface it; routing is per
	// delivery, there is no retroactive render.
	store.OpenPrivateChat(bob)
	surfaces = router.Route(privateMessage("m2", bob, alice, "there?"))
	assert.Len(t, surfaces, 1)
}

func TestIsOwnClassification(t *testing.T) {
	router, _ := newRouter(alice)

	assert.True(t, router.IsOwn(publicMessage("m1", alice, "mine")))
	assert.False(t, router.IsOwn(publicMessage("m2", bob, "theirs")))
}
