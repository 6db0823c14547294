package core

import "fmt"

// Queue is the pass (queue) type a search is run for.
type Queue int

const (
	// QueueNone is used by stand-alone searches outside of any pass.
	QueueNone Queue = iota
	MPNonstopOnline
	MPOutNonstopOnline
	MPNonstopInterline
	MPOutNonstopInterline
	MPSingleStopOnline
	MPRemainingOnline
	MPRemaining
	LFSOnline
	LFSOnlineByCarrier
	LFSRemaining
)

// Queues lists every pass queue in execution order.
var Queues = []Queue{
	MPNonstopOnline,
	MPOutNonstopOnline,
	MPNonstopInterline,
	MPOutNonstopInterline,
	MPSingleStopOnline,
	MPRemainingOnline,
	MPRemaining,
	LFSOnline,
	LFSOnlineByCarrier,
	LFSRemaining,
}

var queueNames = map[Queue]string{
	QueueNone:             "NONE",
	MPNonstopOnline:       "MUST PRICE NONSTOP ONLINE",
	MPOutNonstopOnline:    "MUST PRICE OUTBOUND NONSTOP ONLINE",
	MPNonstopInterline:    "MUST PRICE NONSTOP INTERLINE",
	MPOutNonstopInterline: "MUST PRICE OUTBOUND NONSTOP INTERLINE",
	MPSingleStopOnline:    "MUST PRICE SINGLE STOP ONLINE",
	MPRemainingOnline:     "MUST PRICE REMAINING ONLINE",
	MPRemaining:           "MUST PRICE REMAINING",
	LFSOnline:             "LOW FARE SEARCH ONLINE",
	LFSOnlineByCarrier:    "LOW FARE SEARCH ONLINE BY CARRIER",
	LFSRemaining:          "LOW FARE SEARCH REMAINING",
}

var queueCodes = map[Queue]string{
	QueueNone:             "00",
	MPNonstopOnline:       "01",
	MPOutNonstopOnline:    "02",
	MPNonstopInterline:    "03",
	MPOutNonstopInterline: "04",
	MPSingleStopOnline:    "05",
	MPRemainingOnline:     "11",
	MPRemaining:           "12",
	LFSOnline:             "13",
	LFSOnlineByCarrier:    "14",
	LFSRemaining:          "15",
}

// String returns the human-readable pass title.
func (q Queue) String() string {
	if s, ok := queueNames[q]; ok {
		return s
	}

	return fmt.Sprintf("Queue(%d)", int(q))
}

// Code returns the two-digit diagnostic code of the queue.
func (q Queue) Code() string {
	if s, ok := queueCodes[q]; ok {
		return s
	}

	return "??"
}

// MustPrice reports whether the queue produces mandatory inventory.
func (q Queue) MustPrice() bool { return q >= MPNonstopOnline && q <= MPRemaining }

// LowFare reports whether the queue is a low-fare-search queue.
func (q Queue) LowFare() bool { return q >= LFSOnline && q <= LFSRemaining }

// Online reports whether the queue accepts online items only.
func (q Queue) Online() bool {
	switch q {
	case MPNonstopOnline, MPOutNonstopOnline, MPSingleStopOnline, MPRemainingOnline,
		LFSOnline, LFSOnlineByCarrier:
		return true
	default:
		return false
	}
}

// Interline reports whether the queue accepts interline items only.
func (q Queue) Interline() bool {
	return q == MPNonstopInterline || q == MPOutNonstopInterline
}
