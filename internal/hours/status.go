package hours

import "time"

// Status is what the storefront shows before letting a customer order.
type Status struct {
	Open         bool   `json:"open"`
	ScheduleOpen bool   `json:"schedule_open"`
	ManualOpen   bool   `json:"manual_open"`
	Message      string `json:"message,omitempty"`
}

// Status combines the manual open switch from store settings with the
// calendar. Ordering is allowed only when both agree.
func (c Calendar) Status(now time.Time, manualOpen bool) Status {
	st := Status{
		ScheduleOpen: c.IsOpen(now),
		ManualOpen:   manualOpen,
	}
	st.Open = st.ScheduleOpen && st.ManualOpen
	if !st.Open {
		if st.ManualOpen {
			st.Message = c.NextOpeningMessage(now)
		} else {
			st.Message = ClosedMessage
		}
	}
	return st
}
