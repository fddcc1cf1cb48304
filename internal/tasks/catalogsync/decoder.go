// Package catalogsync ingests catalog lifecycle events into the local
// video projection.
package catalogsync

import "fmt"

// Event 承载一条 catalog 事件的原始载荷。
// 具体字段按 inbox 元数据中的事件类型在 Handler 内解析。
type Event struct {
	Payload []byte
}

type eventDecoder struct{}

func newEventDecoder() *eventDecoder {
	return &eventDecoder{}
}

// Decode 将 Pub/Sub 消息数据包装为 Event。
func (d *eventDecoder) Decode(data []byte) (*Event, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("catalogsync: empty payload")
	}
	return &Event{Payload: data}, nil
}
