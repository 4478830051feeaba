package cline

import "encoding/json"

// ExtractEvents scans text for balanced {...} spans that parse as JSON
// objects and decodes each into an Event, in left-to-right order of
// appearance. Spans that fail to parse are silently dropped; prose, log
// prefixes, and pretty-printed objects spread across lines are all
// tolerated. Nested braces are handled by depth counting, and braces
// inside string literals do not open or close spans.
//
// The function is stateless and idempotent: callers re-run it over the
// whole accumulated buffer as more output arrives, so a prefix call never
// yields an object the full-buffer call would miss. The repeated full
// re-scan trades throughput for that incremental correctness; buffers here
// are a single CLI conversation, so the cost stays negligible.
func ExtractEvents(text string) []Event {
	var events []Event

	depth := 0
	start := -1
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start != -1 {
				raw := []byte(text[start : i+1])
				if json.Valid(raw) {
					var ev Event
					// Best effort: a valid object whose known keys have
					// unexpected types still counts as an event.
					_ = json.Unmarshal(raw, &ev)
					ev.Raw = json.RawMessage(raw)
					events = append(events, ev)
				}
				start = -1
			}
		}
	}

	return events
}
