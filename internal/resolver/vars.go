package resolver

// Environment variables the resolver reads or writes.
const (
	// VarOAuthRefreshToken selects the OAuth strategy when non-empty.
	VarOAuthRefreshToken = "GSC_OAUTH_REFRESH_TOKEN"

	// VarCredentialsJSON carries the service-account key as a JSON blob.
	// VarCredentialsJSONAlias is accepted for deployments configured with
	// the older name; VarCredentialsJSON wins when both are set.
	VarCredentialsJSON      = "GSC_CREDENTIALS_JSON_STRING"
	VarCredentialsJSONAlias = "GOOGLE_APPLICATION_CREDENTIALS_STRING"

	// VarApplicationCredentials is the standard Google SDK variable the
	// resolver produces (service-account strategy) or deletes (otherwise).
	VarApplicationCredentials = "GOOGLE_APPLICATION_CREDENTIALS"

	// VarPrivateKeyBase64 holds the base64-encoded Analytics private key;
	// the decoded text is stored in VarPrivateKey.
	VarPrivateKeyBase64 = "GOOGLE_PRIVATE_KEY_BASE64"
	VarPrivateKey       = "GOOGLE_PRIVATE_KEY"
)

// Pass-through variables: recognized so `tmmcp env` can report their
// presence, but never modified. They reach the child because the full
// snapshot is forwarded.
const (
	VarOAuthClientID     = "GSC_OAUTH_CLIENT_ID"
	VarOAuthClientSecret = "GSC_OAUTH_CLIENT_SECRET"
	VarOAuthRedirectURI  = "GSC_OAUTH_REDIRECT_URI"

	VarClientEmail  = "GOOGLE_CLIENT_EMAIL"
	VarGAPropertyID = "GA_PROPERTY_ID"

	VarTMAuthToken = "TM_AUTH_TOKEN"

	VarDataForSEOUsername = "DATAFORSEO_USERNAME"
	VarDataForSEOPassword = "DATAFORSEO_PASSWORD"

	VarWordPressUsername    = "WORDPRESS_USERNAME"
	VarWordPressAppPassword = "WORDPRESS_APP_PASSWORD"
)

// Managed returns the variables the resolver itself reads to pick a
// strategy or writes while applying one. Supplying these anywhere other
// than the real environment (a manifest, say) would bypass resolution,
// so config validation rejects them.
func Managed() []string {
	return []string{
		VarOAuthRefreshToken,
		VarCredentialsJSON,
		VarCredentialsJSONAlias,
		VarApplicationCredentials,
		VarPrivateKeyBase64,
		VarPrivateKey,
	}
}

// Recognized returns every variable the connector knows about, in report
// order: strategy inputs first, then produced variables, then pass-throughs.
func Recognized() []string {
	return []string{
		VarOAuthRefreshToken,
		VarCredentialsJSON,
		VarCredentialsJSONAlias,
		VarPrivateKeyBase64,
		VarApplicationCredentials,
		VarPrivateKey,
		VarOAuthClientID,
		VarOAuthClientSecret,
		VarOAuthRedirectURI,
		VarClientEmail,
		VarGAPropertyID,
		VarTMAuthToken,
		VarDataForSEOUsername,
		VarDataForSEOPassword,
		VarWordPressUsername,
		VarWordPressAppPassword,
	}
}
