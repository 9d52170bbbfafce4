package gsc

import (
	"errors"
	"fmt"
	"testing"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

func TestIsCredentialRevoked(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"sentinel", ErrCredentialRevoked, true},
		{"wrapped sentinel", fmt.Errorf("op: %w", ErrCredentialRevoked), true},
		{
			"invalid_grant from token endpoint",
			&oauth2.RetrieveError{ErrorCode: "invalid_grant", ErrorDescription: "Token has been expired or revoked."},
			true,
		},
		{
			"wrapped invalid_grant",
			fmt.Errorf("listing sites: %w", &oauth2.RetrieveError{ErrorCode: "invalid_grant"}),
			true,
		},
		{
			"other oauth error",
			&oauth2.RetrieveError{ErrorCode: "invalid_request"},
			false,
		},
		{
			"api 401",
			&googleapi.Error{Code: 401, Message: "Invalid Credentials"},
			true,
		},
		{
			"api 403",
			&googleapi.Error{Code: 403, Message: "Forbidden"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCredentialRevoked(tt.err); got != tt.want {
				t.Errorf("IsCredentialRevoked(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
