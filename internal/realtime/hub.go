package realtime

import "sync"

// ユーザー単位のインプロセス配信チャネル。
// queueやretryはない。購読者がいなければ黙って捨てる
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// 本処理を止めないpushの約束（失敗しても何も返さない）
type Pusher interface {
	Push(userID int64, ev Event)
}

type Hub struct {
	mu   sync.RWMutex
	subs map[int64][]chan Event
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int64][]chan Event)}
}

// 購読チャネルを返す。閉じるのはUnsubscribe側
func (h *Hub) Subscribe(userID int64) chan Event {
	ch := make(chan Event, 8)

	h.mu.Lock()
	h.subs[userID] = append(h.subs[userID], ch)
	h.mu.Unlock()

	return ch
}

func (h *Hub) Unsubscribe(userID int64, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chans := h.subs[userID]
	for i, c := range chans {
		if c == ch {
			h.subs[userID] = append(chans[:i], chans[i+1:]...)
			close(c)
			break
		}
	}
	if len(h.subs[userID]) == 0 {
		delete(h.subs, userID)
	}
}

// ノンブロッキング送信。詰まった購読者はスキップする
func (h *Hub) Push(userID int64, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subs[userID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
