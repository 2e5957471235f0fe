package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PushDeliversToSubscriber(t *testing.T) {
	h := NewHub()

	ch := h.Subscribe(2)
	defer h.Unsubscribe(2, ch)

	h.Push(2, Event{Type: "order_status", Data: "shipped"})

	ev := <-ch
	assert.Equal(t, "order_status", ev.Type)
}

func TestHub_PushToUnknownUserIsNoop(t *testing.T) {
	h := NewHub()

	//購読者ゼロでもブロックもpanicもしない
	h.Push(99, Event{Type: "order_status"})
}

func TestHub_MultipleSubscribersAllReceive(t *testing.T) {
	h := NewHub()

	a := h.Subscribe(2)
	b := h.Subscribe(2)
	defer h.Unsubscribe(2, a)
	defer h.Unsubscribe(2, b)

	h.Push(2, Event{Type: "order_status"})

	assert.Equal(t, "order_status", (<-a).Type)
	assert.Equal(t, "order_status", (<-b).Type)
}

func TestHub_SlowSubscriberIsSkipped(t *testing.T) {
	h := NewHub()

	ch := h.Subscribe(2)
	defer h.Unsubscribe(2, ch)

	//バッファ(8)を溢れさせてもPushはブロックしない
	for i := 0; i < 20; i++ {
		h.Push(2, Event{Type: "order_status"})
	}
	assert.Equal(t, 8, len(ch))
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()

	ch := h.Subscribe(2)
	h.Unsubscribe(2, ch)

	_, open := <-ch
	assert.False(t, open)

	//解除後のPushは届かないだけ
	h.Push(2, Event{Type: "order_status"})
}
