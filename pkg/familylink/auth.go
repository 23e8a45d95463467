package familylink

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// sapisidCookie is the Google session cookie the derived auth token is
// built from.
const sapisidCookie = "SAPISID"

// SAPISIDHash derives the Google API authorization token from the SAPISID
// cookie value. The token is "{unix_millis}_{sha1(millis SP sapisid SP origin)}".
func SAPISIDHash(sapisid, origin string, now time.Time) string {
	millis := now.UnixMilli()
	sum := sha1.Sum([]byte(fmt.Sprintf("%d %s %s", millis, sapisid, origin)))
	return fmt.Sprintf("%d_%s", millis, hex.EncodeToString(sum[:]))
}

// AuthorizationHeader builds the Authorization header value for a request
// issued at the given instant.
func AuthorizationHeader(sapisid, origin string, now time.Time) string {
	return "SAPISIDHASH " + SAPISIDHash(sapisid, origin, now)
}

// FindSAPISID extracts the SAPISID cookie value scoped to google.com from a
// cookie set.
func FindSAPISID(cookies []*http.Cookie) (string, error) {
	for _, c := range cookies {
		if c.Name == sapisidCookie && strings.HasSuffix(c.Domain, ".google.com") {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("could not find %s cookie for .google.com", sapisidCookie)
}
