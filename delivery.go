package event

import (
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Headers added by Core.Prepare.
const (
	HeaderCoreUUID          = "Core-UUID"
	HeaderHostname          = "FreeSWITCH-Hostname"
	HeaderSwitchname        = "FreeSWITCH-Switchname"
	HeaderIPv4              = "FreeSWITCH-IPv4"
	HeaderIPv6              = "FreeSWITCH-IPv6"
	HeaderDateLocal         = "Event-Date-Local"
	HeaderDateGMT           = "Event-Date-GMT"
	HeaderDateTimestamp     = "Event-Date-Timestamp"
	HeaderCallingFile       = "Event-Calling-File"
	HeaderCallingFunction   = "Event-Calling-Function"
	HeaderCallingLineNumber = "Event-Calling-Line-Number"
	HeaderSequence          = "Event-Sequence"
)

const (
	dateLocalLayout = "2006-01-02 15:04:05"
	dateGMTLayout   = "Mon, 02 Jan 2006 15:04:05 GMT"
)

// Core describes the switch instance that stamps outgoing events.
type Core struct {
	UUID       string
	Hostname   string
	Switchname string
	IPv4       string
	IPv6       string

	// Now defaults to time.Now.
	Now func() time.Time

	sequence atomic.Uint64
}

// NewCore returns a Core with a fresh UUID and the host name of the machine.
func NewCore() *Core {
	host, _ := os.Hostname()
	return &Core{
		UUID:       uuid.NewString(),
		Hostname:   host,
		Switchname: host,
	}
}

// Prepare stamps e with the identity of the core, the current time, the
// caller's location and the next sequence number. Sequence numbers are
// unique per Core and start at 1.
func (c *Core) Prepare(e *Event) {
	c.prepare(e, Caller(1))
}

func (c *Core) prepare(e *Event, site CallSite) {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	seq := c.sequence.Add(1)

	e.addValue(StackBottom, HeaderCoreUUID, c.UUID)
	e.addValue(StackBottom, HeaderHostname, c.Hostname)
	e.addValue(StackBottom, HeaderSwitchname, c.Switchname)
	e.addValue(StackBottom, HeaderIPv4, c.IPv4)
	e.addValue(StackBottom, HeaderIPv6, c.IPv6)
	e.addValue(StackBottom, HeaderDateLocal, now.Local().Format(dateLocalLayout))
	e.addValue(StackBottom, HeaderDateGMT, now.UTC().Format(dateGMTLayout))
	e.addValue(StackBottom, HeaderDateTimestamp, strconv.FormatInt(now.UnixMicro(), 10))
	e.addValue(StackBottom, HeaderCallingFile, site.File)
	e.addValue(StackBottom, HeaderCallingFunction, site.Function)
	e.addValue(StackBottom, HeaderCallingLineNumber, strconv.Itoa(site.Line))
	e.addValue(StackBottom, HeaderSequence, strconv.FormatUint(seq, 10))
}
