package resolver

// Kind identifies which Search Console authentication strategy resolution
// selected. The strategies are mutually exclusive: the downstream MCP tools
// silently prefer whichever credential they find first, so exactly one mode
// may be configured after resolution.
type Kind string

const (
	// KindOAuth authenticates through a user-granted refresh token.
	KindOAuth Kind = "oauth"
	// KindServiceAccount authenticates through a key file materialized in
	// the temp directory.
	KindServiceAccount Kind = "service-account"
	// KindNone launches with Search Console unauthenticated.
	KindNone Kind = "none"
)

// Strategy is the resolution outcome as a tagged variant. CredentialsFile is
// populated only for KindServiceAccount.
type Strategy struct {
	Kind            Kind
	CredentialsFile string
}

// Describe returns a one-line human summary for status output.
func (s Strategy) Describe() string {
	switch s.Kind {
	case KindOAuth:
		return "OAuth refresh token (" + VarOAuthRefreshToken + ")"
	case KindServiceAccount:
		return "service-account key file at " + s.CredentialsFile
	default:
		return "unauthenticated (no Search Console credentials configured)"
	}
}
