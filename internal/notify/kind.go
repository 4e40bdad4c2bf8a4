package notify

import "strings"

// Kind classifies a notification.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// AutoDismiss reports whether entries of this kind remove themselves.
func (k Kind) AutoDismiss() bool {
	return k == KindSuccess || k == KindInfo
}

// Icon names the glyph shown next to the message.
func (k Kind) Icon() string {
	switch k {
	case KindSuccess:
		return "check-circle"
	case KindError:
		return "exclamation-circle"
	case KindWarning:
		return "exclamation-triangle"
	default:
		return "info-circle"
	}
}

// ParseKind maps a kind name to a Kind. Unknown names are info; "danger" is
// accepted as an alias of error.
func ParseKind(name string) Kind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "success":
		return KindSuccess
	case "warning":
		return KindWarning
	case "error", "danger":
		return KindError
	default:
		return KindInfo
	}
}
