package codec

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lc/umbra/internal/registry"
)

// Encode writes the registry as the canonical structured TOML document:
// items in index order, grouped into their tables, values escaped per
// writeString. Encoding the same registry twice yields identical bytes.
func Encode(w io.Writer, reg *registry.Registry) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# Umbra configuration file")
	fmt.Fprintln(bw, "# This file is rewritten by the configuration subsystem;")
	fmt.Fprintln(bw, "# manual edits survive, comments do not.")

	var open []string
	for _, it := range reg.Items() {
		tbl := it.Path[:it.Depth()-1]
		if !equalPath(open, tbl) {
			common := commonPrefix(open, tbl)
			for d := common; d < len(tbl); d++ {
				if d == 0 {
					bw.WriteByte('\n')
				}
				indent(bw, d)
				fmt.Fprintf(bw, "[%s]\n", strings.Join(tbl[:d+1], "."))
			}
			open = tbl
		}
		indent(bw, len(tbl))
		bw.WriteString(it.Leaf())
		bw.WriteString(" = ")
		writeValue(bw, it.Value)
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func equalPath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func commonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// Indentation is not required by the format; two spaces per table depth
// keep the nested tables readable.
func indent(w *bufio.Writer, depth int) {
	for i := 0; i < 2*depth; i++ {
		w.WriteByte(' ')
	}
}

// writeValue emits one scalar in its on-disk form.
func writeValue(w *bufio.Writer, v registry.Value) {
	switch v.Kind {
	case registry.KindBool:
		w.WriteString(strconv.FormatBool(v.B))
	case registry.KindInt, registry.KindLong:
		w.WriteString(strconv.FormatInt(v.I, 10))
	case registry.KindUInt, registry.KindULong:
		w.WriteString(strconv.FormatUint(v.U, 10))
	case registry.KindString:
		writeString(w, v.S)
	case registry.KindIPv4, registry.KindIPv6:
		// canonical presentation; the unspecified address renders as
		// "0.0.0.0" / "::"
		writeString(w, v.Addr.String())
	case registry.KindPTRMode:
		writeString(w, v.PTR.String())
	case registry.KindBusyReply:
		writeString(w, v.Busy.String())
	case registry.KindBlockingMode:
		writeString(w, v.Blocking.String())
	case registry.KindRefreshMode:
		writeString(w, v.Refresh.String())
	case registry.KindPrivacyLevel:
		w.WriteString(strconv.Itoa(int(v.Privacy)))
	}
}

// plainByte reports whether ch may appear verbatim inside a quoted string:
// printable ASCII that is neither the quote nor the backslash.
func plainByte(ch byte) bool {
	return ch >= 0x20 && ch <= 0x7e && ch != '"' && ch != '\\'
}

// writeString quotes s. Strings made of plain bytes are emitted verbatim;
// otherwise every byte is inspected individually, using the short backslash
// escapes where they exist and a \0xHH byte escape for any other
// non-printable byte.
func writeString(w *bufio.Writer, s string) {
	clean := true
	for i := 0; i < len(s); i++ {
		if !plainByte(s[i]) {
			clean = false
			break
		}
	}
	if clean {
		w.WriteByte('"')
		w.WriteString(s)
		w.WriteByte('"')
		return
	}

	w.WriteByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if plainByte(ch) {
			w.WriteByte(ch)
			continue
		}
		switch ch {
		case 0x08:
			w.WriteString(`\b`)
		case 0x09:
			w.WriteString(`\t`)
		case 0x0a:
			w.WriteString(`\n`)
		case 0x0c:
			w.WriteString(`\f`)
		case 0x0d:
			w.WriteString(`\r`)
		case '"':
			w.WriteString(`\"`)
		case '\\':
			w.WriteString(`\\`)
		default:
			fmt.Fprintf(w, `\0x%02x`, ch)
		}
	}
	w.WriteByte('"')
}
