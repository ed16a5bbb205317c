package notify

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Tyrowin/chatroom/internal/chat"
)

type published struct {
	subject string
	notice  Notice
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(subject string, data []byte) error {
	var n Notice
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f.sent = append(f.sent, published{subject: subject, notice: n})
	return f.err
}

func TestNATSObserver_PublishesOneNoticePerEvent(t *testing.T) {
	req := require.New(t)
	pub := &fakePublisher{}
	obs := NewNATSObserver(pub, "lobby", zaptest.NewLogger(t))
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	obs.now = func() time.Time { return fixed }

	var _ chat.Observer = obs

	obs.Connected("c1")
	obs.Bound("c1", "Alice")
	obs.JoinRejected("c2", "Alice", chat.RejectDuplicateName)
	obs.Routed("c1", chat.ChatMessage{SenderName: "Alice", TargetName: chat.Everyone, Body: "hi", Timestamp: fixed}, 2)
	obs.Unbound("c1", "Alice")
	obs.Disconnected("c1", "Alice")

	req.Len(pub.sent, 6)
	req.Equal([]string{
		"lobby.connected", "lobby.bound", "lobby.join-rejected",
		"lobby.routed", "lobby.unbound", "lobby.disconnected",
	}, []string{
		pub.sent[0].subject, pub.sent[1].subject, pub.sent[2].subject,
		pub.sent[3].subject, pub.sent[4].subject, pub.sent[5].subject,
	})

	req.Equal(Notice{Kind: "join-rejected", ConnectionID: "c2", Name: "Alice", Reason: "duplicate-name", At: fixed}, pub.sent[2].notice)
	req.Equal(Notice{
		Kind: "routed", ConnectionID: "c1", SenderName: "Alice",
		TargetName: chat.Everyone, Recipients: 2, At: fixed,
	}, pub.sent[3].notice)
}

func TestNATSObserver_PublishErrorsAreSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("nats: connection closed")}
	obs := NewNATSObserver(pub, "", zaptest.NewLogger(t))

	require.NotPanics(t, func() { obs.Connected("c1") })
	require.Len(t, pub.sent, 1)
	require.Equal(t, "chatroom.connected", pub.sent[0].subject)
}
