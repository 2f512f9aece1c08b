// Package auth issues GitHub App credentials.
//
// [AppIssuer] signs short-lived RS256 JWTs from the app id and private key.
// [InstallationIssuer] additionally exchanges that JWT for an installation
// access token. Neither caches; caching is the token manager's job.
package auth
