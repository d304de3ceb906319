// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package logging

import (
	"net/url"
	"strings"
)

// sensitiveParams are query parameters that carry provider credentials.
// Matched case-insensitively.
var sensitiveParams = map[string]struct{}{
	"accesskey":  {},
	"access_key": {},
	"apikey":     {},
	"api_key":    {},
	"key":        {},
	"psid":       {},
	"siteid":     {},
	"token":      {},
	"secret":     {},
	"wm":         {},
}

// RedactURL returns raw with credential query values masked so outbound
// provider URLs can be logged. Unparseable input is masked entirely.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		u.User = url.User("REDACTED")
	}
	if u.RawQuery == "" {
		return u.String()
	}

	q := u.Query()
	for name, values := range q {
		if _, ok := sensitiveParams[strings.ToLower(name)]; !ok {
			continue
		}
		for i, v := range values {
			values[i] = maskValue(v)
		}
		q[name] = values
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// maskValue keeps a short prefix so operators can tell credentials apart.
func maskValue(v string) string {
	if len(v) <= 4 {
		return "****"
	}
	return v[:2] + "****"
}
