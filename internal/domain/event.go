package domain

// EventEffect is the fixed (reputation, money, fanCount) delta of one crisis
// choice. Values may be negative; the resolver floors stored reputation and
// fan count at zero after applying them.
type EventEffect struct {
	Reputation int64 `json:"reputation"`
	Money      int64 `json:"money"`
	FanCount   int64 `json:"fanCount"`
}

// EventChoice is one of exactly three mitigations offered by a crisis event.
type EventChoice struct {
	Text          string      `json:"text"`
	Effect        EventEffect `json:"effect"`
	ResultMessage string      `json:"resultMessage"`
}

// CrisisEvent is a random narrative branching event. Choices are terminal:
// once one is picked the event resolves and cannot be re-picked.
type CrisisEvent struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	MemberName  string        `json:"memberName"`
	Choices     []EventChoice `json:"choices"`
}
