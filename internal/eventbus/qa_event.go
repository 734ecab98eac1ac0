package eventbus

type QAEventType string

const (
	QAEventLearned   QAEventType = "Learned"
	QAEventUpdated   QAEventType = "Updated"
	QAEventDeleted   QAEventType = "Deleted"
	QAEventMatched   QAEventType = "Matched"
	QAEventUnmatched QAEventType = "Unmatched"
)

type QAEvent struct {
	Type     QAEventType
	QAID     uint
	Question string // 规范化后的问题
	Query    string // 用户原始输入，仅 Matched/Unmatched 携带
	Score    int
}

type QAEventHandler = Handler[QAEvent]
type QAEventBus = Bus[QAEventType, QAEvent]

func NewQAEventBus() *QAEventBus {
	return NewBus[QAEventType, QAEvent]()
}
