package ingest

import "time"

// ParseISODuration converts an ISO 8601 duration (the format the video API
// uses, e.g. PT1H45M) to a time.Duration. Anything malformed parses to zero,
// which the duration predicate then rejects; there is no error path.
func ParseISODuration(s string) time.Duration {
	if len(s) < 2 || s[0] != 'P' {
		return 0
	}

	var total time.Duration
	var num time.Duration
	hasNum := false
	inTime := false

	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + time.Duration(r-'0')
			hasNum = true
		case r == 'T' && !inTime && !hasNum:
			inTime = true
		default:
			if !hasNum {
				return 0
			}
			var unit time.Duration
			switch {
			case r == 'W' && !inTime:
				unit = 7 * 24 * time.Hour
			case r == 'D' && !inTime:
				unit = 24 * time.Hour
			case r == 'H' && inTime:
				unit = time.Hour
			case r == 'M' && inTime:
				unit = time.Minute
			case r == 'S' && inTime:
				unit = time.Second
			default:
				return 0
			}
			total += num * unit
			num, hasNum = 0, false
		}
	}

	if hasNum {
		// trailing number without a designator
		return 0
	}

	return total
}
