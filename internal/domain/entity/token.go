package entity

// TokenPair is the pair of signed bearer tokens issued after authentication.
// Tokens are not persisted; each one is a self-contained signed claim set.
type TokenPair struct {
	AccessToken  string // Short-lived token presented on every request.
	RefreshToken string // Long-lived token exchanged for a fresh pair.
}
