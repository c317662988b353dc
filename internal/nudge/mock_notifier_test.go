package nudge

type mockNotifier struct {
	called    bool
	streak    int
	hoursLeft int
	err       error
}

func (m *mockNotifier) SendNudge(streak, hoursLeft int) error {
	m.called = true
	m.streak = streak
	m.hoursLeft = hoursLeft
	return m.err
}
