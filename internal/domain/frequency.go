package domain

import (
	"fmt"
	"time"
)

// DefaultFrequency is the publish rate, in Hz, used when none is requested
// and substituted for any non-positive request.
const DefaultFrequency = 10

// FrequencyClass classifies a requested frequency.
type FrequencyClass int

const (
	FrequencyNominal FrequencyClass = iota
	FrequencyInvalidNegative
	FrequencyInvalidZero
)

// String returns a human-readable representation of the class.
func (c FrequencyClass) String() string {
	switch c {
	case FrequencyNominal:
		return "nominal"
	case FrequencyInvalidNegative:
		return "invalid-negative"
	case FrequencyInvalidZero:
		return "invalid-zero"
	default:
		return "unknown"
	}
}

// NoticeLevel is the severity of a diagnostic notice.
type NoticeLevel int

const (
	NoticeDebug NoticeLevel = iota
	NoticeInfo
	NoticeWarn
	NoticeError
	NoticeCritical
)

// String returns a human-readable representation of the level.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeDebug:
		return "debug"
	case NoticeInfo:
		return "info"
	case NoticeWarn:
		return "warn"
	case NoticeError:
		return "error"
	case NoticeCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Notice is a leveled diagnostic produced by a pure computation.
// The caller decides where it is emitted.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// FrequencyResolution is the outcome of validating a requested frequency.
type FrequencyResolution struct {
	Requested int
	Effective int
	Class     FrequencyClass
	Notices   []Notice
}

// Period returns the tick period for the effective frequency.
func (r FrequencyResolution) Period() time.Duration {
	return time.Second / time.Duration(r.Effective)
}

// ResolveFrequency turns a requested frequency into an always-positive
// effective frequency. Non-positive requests fall back to DefaultFrequency.
func ResolveFrequency(requested int) FrequencyResolution {
	fallback := Notice{
		Level:   NoticeWarn,
		Message: fmt.Sprintf("talker frequency set to default value of %dHz", DefaultFrequency),
	}

	switch {
	case requested > 0:
		return FrequencyResolution{
			Requested: requested,
			Effective: requested,
			Class:     FrequencyNominal,
			Notices: []Notice{{
				Level:   NoticeDebug,
				Message: fmt.Sprintf("talker publishing at frequency: %d", requested),
			}},
		}
	case requested < 0:
		return FrequencyResolution{
			Requested: requested,
			Effective: DefaultFrequency,
			Class:     FrequencyInvalidNegative,
			Notices: []Notice{
				{Level: NoticeCritical, Message: "talker expects positive value of frequency"},
				fallback,
			},
		}
	default:
		return FrequencyResolution{
			Requested: requested,
			Effective: DefaultFrequency,
			Class:     FrequencyInvalidZero,
			Notices: []Notice{
				{Level: NoticeError, Message: "talker expects non-zero frequency"},
				fallback,
			},
		}
	}
}

// ParseFrequency converts a startup argument to a requested frequency the way
// C atoi does: leading whitespace, an optional sign, then as many decimal
// digits as are present. Input without leading digits yields 0, which the
// resolver treats as an invalid zero request.
func ParseFrequency(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '\v' || s[i] == '\f') {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	const limit = int(^uint32(0) >> 1)
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > limit {
			// clamp instead of wrapping
			n = limit
		}
	}

	if neg {
		return -n
	}
	return n
}
