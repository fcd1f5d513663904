package main

import "time"

type fetchState int

const (
	FetchFailed fetchState = iota
	FetchInProgress
	FetchSuccess
)

func (s fetchState) String() string {
	switch s {
	case FetchFailed:
		return "failed"
	case FetchInProgress:
		return "in progress"
	case FetchSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// FetchStatus is the single fetch slot value. Region is only meaningful for
// FetchSuccess.
type FetchStatus struct {
	State  fetchState
	Region Region
}

func failedStatus() FetchStatus {
	return FetchStatus{State: FetchFailed}
}

func inProgressStatus() FetchStatus {
	return FetchStatus{State: FetchInProgress}
}

func successStatus(region Region) FetchStatus {
	return FetchStatus{State: FetchSuccess, Region: region}
}

func (s FetchStatus) String() string {
	if s.State == FetchSuccess {
		return s.State.String() + " " + s.Region.String()
	}
	return s.State.String()
}

func shouldFetch(current FetchStatus, next Region) bool {
	switch current.State {
	case FetchInProgress:
		return false
	case FetchSuccess:
		return current.Region != next
	default:
		return true
	}
}

// fetchSlot owns the fetch status. It is only touched from the update loop.
type fetchSlot struct {
	status      FetchStatus
	lastSuccess time.Time
}

func newFetchSlot() *fetchSlot {
	return &fetchSlot{status: failedStatus()}
}

// begin claims the slot for region. The slot moves to in progress before the
// caller issues the request, so a second tick can never fire another one.
func (s *fetchSlot) begin(region Region) bool {
	if !shouldFetch(s.status, region) {
		return false
	}
	s.status = inProgressStatus()
	return true
}

func (s *fetchSlot) settle(status FetchStatus, now time.Time) {
	s.status = status
	if status.State == FetchSuccess {
		s.lastSuccess = now
	}
}

func (s *fetchSlot) Status() FetchStatus {
	return s.status
}

func (s *fetchSlot) LastSuccess() time.Time {
	return s.lastSuccess
}
