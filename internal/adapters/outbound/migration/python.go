package migration

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/openkraft/typeguard/internal/domain"
)

var pythonHeader = []string{
	`"""`,
	`Type Migration Script`,
	`Generated by typeguard`,
	`"""`,
	``,
	`from datetime import datetime, timezone`,
	`from typing import Any, Union`,
	``,
}

var pythonConvertID = []string{
	`def convert_id(value: Union[str, int]) -> int:`,
	`    """Convert string ID to integer"""`,
	`    if isinstance(value, int):`,
	`        return value`,
	`    return int(value)`,
	``,
}

var pythonNormalizeTimestamp = []string{
	`def normalize_timestamp(value, target_format="iso8601"):`,
	`    """Convert any timestamp to target format"""`,
	`    if isinstance(value, int):`,
	`        # Unix timestamp (seconds or milliseconds)`,
	`        if value > 1e11:  # Milliseconds`,
	`            value = value / 1000`,
	`        dt = datetime.fromtimestamp(value, tz=timezone.utc)`,
	`    elif isinstance(value, str):`,
	`        dt = datetime.fromisoformat(value.replace("Z", "+00:00"))`,
	`    else:`,
	`        raise ValueError(f"Cannot parse timestamp: {value}")`,
	``,
	`    if target_format == "iso8601":`,
	`        return dt.isoformat().replace("+00:00", "Z")`,
	`    elif target_format == "unix_seconds":`,
	`        return int(dt.timestamp())`,
	`    elif target_format == "unix_ms":`,
	`        return int(dt.timestamp() * 1000)`,
	`    else:`,
	`        raise ValueError(f"Unknown format: {target_format}")`,
	``,
}

var pythonConvertAmount = []string{
	`def convert_amount(value: str, from_cents: bool = True) -> float:`,
	`    """Convert string amount to decimal"""`,
	`    num = float(value)`,
	`    if from_cents:`,
	`        return num / 100`,
	`    return num`,
	``,
}

var pythonConvertBoolean = []string{
	`def convert_boolean(value: Any) -> bool:`,
	`    """Convert various boolean representations"""`,
	`    if isinstance(value, bool):`,
	`        return value`,
	`    if isinstance(value, int):`,
	`        return value != 0`,
	`    if isinstance(value, str):`,
	`        return value.lower() in ("true", "1", "yes")`,
	`    return bool(value)`,
	``,
}

func python(results []domain.ValidationResult) string {
	conv := collect(results)
	lines := append([]string(nil), pythonHeader...)

	if conv.has("string", "integer") || conv.has("integer", "string") {
		lines = append(lines, pythonConvertID...)
	}
	if needsTimestamp(results) {
		lines = append(lines, pythonNormalizeTimestamp...)
	}
	if conv.has("string", "number") {
		lines = append(lines, pythonConvertAmount...)
	}
	if conv.has("string", "boolean") || conv.has("integer", "boolean") {
		lines = append(lines, pythonConvertBoolean...)
	}

	lines = append(lines, "# Example usage:", "# arguments = {")
	for _, r := range results {
		if r.HasAutoFix() {
			lines = append(lines, fmt.Sprintf("#     \"%s\": %s,  # was: %s", r.Field, pyRepr(r.AutoFix), pyRepr(r.Value)))
		}
	}
	lines = append(lines, "# }")

	return strings.Join(lines, "\n")
}

// pyRepr renders v the way Python's repr() shows the decoded JSON value.
func pyRepr(v domain.Value) string {
	switch t := v.(type) {
	case nil, domain.Null:
		return "None"
	case domain.Bool:
		if t {
			return "True"
		}
		return "False"
	case domain.Int:
		return strconv.FormatInt(int64(t), 10)
	case domain.Float:
		return pyFloat(float64(t))
	case domain.String:
		return pyString(string(t))
	case domain.Array:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = pyRepr(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *domain.Object:
		keys := t.Keys()
		parts := make([]string, len(keys))
		for i, k := range keys {
			e, _ := t.Get(k)
			parts[i] = pyString(k) + ": " + pyRepr(e)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return domain.Render(v)
}

func pyFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func pyString(s string) string {
	quote := byte('\'')
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = '"'
	}
	var b strings.Builder
	b.WriteByte(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(quote):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(quote)
	return b.String()
}
