package steam

// Package steam speaks to the community service over HTTP: the per-profile
// nickname endpoint, the vanity-name XML lookup, and the rendered friends
// page scrape used by the cleanup pass. Session tokens come from an injected
// CredentialProvider rather than ambient globals.
