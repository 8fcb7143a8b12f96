package account

// TokenGenerator abstracts issuance of opaque access tokens.
type TokenGenerator interface {
	Generate() (string, error)
}
