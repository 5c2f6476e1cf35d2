package player

// Односторонний канал админ-консоль → превью. Fire-and-forget,
// at-most-once: подтверждений нет, каждое сообщение несёт полный черновик,
// поэтому достаточно last-write-wins.

const MsgPreviewUpdate = "PREVIEW_UPDATE"

type PreviewMessage struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}

type PreviewBus struct {
	ch chan PreviewMessage
}

func NewPreviewBus() *PreviewBus {
	// буфер на одно сообщение: новый черновик вытесняет непрочитанный
	return &PreviewBus{ch: make(chan PreviewMessage, 1)}
}

// Publish не блокируется: если получатель не успел забрать предыдущее
// сообщение, оно заменяется свежим.
func (b *PreviewBus) Publish(m PreviewMessage) {
	for {
		select {
		case b.ch <- m:
			return
		default:
			select {
			case <-b.ch:
			default:
			}
		}
	}
}

func (b *PreviewBus) C() <-chan PreviewMessage { return b.ch }
