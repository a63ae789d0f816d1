package migration

import (
	"fmt"
	"strings"

	"github.com/openkraft/typeguard/internal/domain"
)

var jsHeader = []string{
	`/**`,
	` * Type Migration Script`,
	` * Generated by typeguard`,
	` */`,
	``,
}

var jsConvertID = []string{
	`function convertId(value) {`,
	`  return typeof value === "string" ? parseInt(value, 10) : value;`,
	`}`,
	``,
}

var jsNormalizeTimestamp = []string{
	`function normalizeTimestamp(value, targetFormat = "iso8601") {`,
	`  let date;`,
	`  if (typeof value === "number") {`,
	`    // Unix timestamp (seconds or milliseconds)`,
	`    const ms = value > 1e11 ? value : value * 1000;`,
	`    date = new Date(ms);`,
	`  } else if (typeof value === "string") {`,
	`    date = new Date(value);`,
	`  } else {`,
	"    throw new Error(`Cannot parse timestamp: ${value}`);",
	`  }`,
	``,
	`  switch (targetFormat) {`,
	`    case "iso8601":`,
	`      return date.toISOString();`,
	`    case "unix_seconds":`,
	`      return Math.floor(date.getTime() / 1000);`,
	`    case "unix_ms":`,
	`      return date.getTime();`,
	`    default:`,
	"      throw new Error(`Unknown format: ${targetFormat}`);",
	`  }`,
	`}`,
	``,
}

var jsConvertAmount = []string{
	`function convertAmount(value, fromCents = true) {`,
	`  const num = parseFloat(value);`,
	`  return fromCents ? num / 100 : num;`,
	`}`,
	``,
}

var jsConvertBoolean = []string{
	`function convertBoolean(value) {`,
	`  if (typeof value === "boolean") return value;`,
	`  if (typeof value === "number") return value !== 0;`,
	`  if (typeof value === "string") return ["true", "1", "yes"].includes(value.toLowerCase());`,
	`  return Boolean(value);`,
	`}`,
	``,
}

func javascript(results []domain.ValidationResult) string {
	conv := collect(results)
	lines := append([]string(nil), jsHeader...)

	if conv.has("string", "integer") {
		lines = append(lines, jsConvertID...)
	}
	if needsTimestamp(results) {
		lines = append(lines, jsNormalizeTimestamp...)
	}
	if conv.has("string", "number") {
		lines = append(lines, jsConvertAmount...)
	}
	if conv.has("string", "boolean") || conv.has("integer", "boolean") {
		lines = append(lines, jsConvertBoolean...)
	}

	lines = append(lines, "// Example usage:", "// const arguments = {")
	for _, r := range results {
		if r.HasAutoFix() {
			lines = append(lines, fmt.Sprintf("//   %s: %s,  // was: %s", r.Field, domain.Render(r.AutoFix), domain.Render(r.Value)))
		}
	}
	lines = append(lines, "// };")

	return strings.Join(lines, "\n")
}
