package attendance

type MarkedEvent struct {
	Data   MarkDTO
	Result Record
}
