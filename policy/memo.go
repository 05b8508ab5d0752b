package policy

type memoKey struct {
	userID int64
	plan   string
}

type memoEntry struct {
	subscribed bool
	err        error
}

// Memo caches subscription answers for the lifetime of one request.
// Create a new one per request; it must not outlive it.
type Memo struct {
	next    SubscriptionChecker
	answers map[memoKey]memoEntry
}

func NewMemo(next SubscriptionChecker) *Memo {
	return &Memo{next: next, answers: map[memoKey]memoEntry{}}
}

func (m *Memo) IsSubscribed(userID int64, plan string) (bool, error) {
	k := memoKey{userID, plan}
	if e, ok := m.answers[k]; ok {
		return e.subscribed, e.err
	}
	subscribed, err := m.next.IsSubscribed(userID, plan)
	m.answers[k] = memoEntry{subscribed, err}
	return subscribed, err
}
