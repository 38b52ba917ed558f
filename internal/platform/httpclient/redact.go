package httpclient

import (
	"net/url"
	"strings"

	"movielinks/internal/platform/errors"
)

// secretParams are query parameters never written to logs or errors.
var secretParams = []string{"apikey", "api_key", "key", "token"}

// redact masks credential query parameters in rawURL. An unparseable URL
// loses its whole query.
func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		if i := strings.IndexByte(rawURL, '?'); i >= 0 {
			return rawURL[:i] + "?REDACTED"
		}
		return rawURL
	}
	if u.RawQuery == "" {
		return rawURL
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, "REDACTED")
			changed = true
		}
	}
	if !changed {
		return rawURL
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// scrubURL masks credentials in the URL carried by a *url.Error, which
// net/http embeds verbatim in its message.
func scrubURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		ue.URL = redact(ue.URL)
	}
	return err
}
