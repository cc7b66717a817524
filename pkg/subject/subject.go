package subject

import (
	"net/url"
	"regexp"
	"strings"

	"steam-extract/pkg/models"
)

var (
	bareID    = regexp.MustCompile(`^\d+$`)
	pathAppID = regexp.MustCompile(`/app/(\d+)`)
)

// Detect extracts an app id from a bare id, a catalog or store URL path
// (".../app/<id>/..."), or an appid/id query parameter.
func Detect(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if bareID.MatchString(raw) {
		return raw, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", models.ErrNoSubject
	}
	if m := pathAppID.FindStringSubmatch(u.Path); m != nil {
		return m[1], nil
	}
	q := u.Query()
	for _, key := range []string{"appid", "id"} {
		if v := strings.TrimSpace(q.Get(key)); bareID.MatchString(v) {
			return v, nil
		}
	}
	return "", models.ErrNoSubject
}
