package registry

// Kind discriminates the payload stored in a Value. Every Item declares
// exactly one Kind and its Value never holds another; both codecs switch
// over Kind exhaustively so adding a new one is a compile-visible change.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindUInt
	KindLong
	KindULong
	KindString
	KindIPv4
	KindIPv6
	KindPTRMode
	KindBusyReply
	KindBlockingMode
	KindRefreshMode
	KindPrivacyLevel
)

// String returns a human-readable type name, used in diagnostics and the
// CLI listing.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUInt:
		return "uint"
	case KindLong:
		return "long"
	case KindULong:
		return "ulong"
	case KindString:
		return "string"
	case KindIPv4:
		return "ipv4"
	case KindIPv6:
		return "ipv6"
	case KindPTRMode:
		return "ptr mode"
	case KindBusyReply:
		return "busy reply"
	case KindBlockingMode:
		return "blocking mode"
	case KindRefreshMode:
		return "refresh mode"
	case KindPrivacyLevel:
		return "privacy level"
	}
	return "unknown"
}
