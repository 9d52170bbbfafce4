package gsc

import (
	"errors"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// ErrCredentialRevoked indicates the stored Google grant is no longer
// valid and the user must re-authenticate. Service calls attach it to
// returned errors when the API rejects the credential, so callers can
// test with errors.Is.
var ErrCredentialRevoked = errors.New("search console credential revoked")

// ErrNoCredentials indicates no usable credential source was configured.
var ErrNoCredentials = errors.New("no search console credentials configured")

// IsCredentialRevoked reports whether err means the Google credential
// behind the client was revoked or expired beyond refresh.
//
// Two shapes are recognized: the token endpoint refusing the refresh
// token with the "invalid_grant" OAuth code, and the API itself
// answering 401 once a derived access token stops being honored.
func IsCredentialRevoked(err error) bool {
	if errors.Is(err, ErrCredentialRevoked) {
		return true
	}
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.ErrorCode == "invalid_grant" {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
		return true
	}
	return false
}
