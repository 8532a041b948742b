package config

const (
	usePKCEVar             = "OAUTH_USE_PKCE"
	requireStateVar        = "OAUTH_REQUIRE_STATE"
	codeStorePathVar       = "CODE_STORE_PATH"
	codeStorePassphraseVar = "CODE_STORE_PASSPHRASE"
)

type SecurityConfig interface {
	GetUsePKCE() bool
	GetRequireState() bool
	GetCodeStorePath() string
	GetCodeStorePassphrase() string
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetUsePKCE() bool {
	return GetEnvBool(usePKCEVar, true)
}

// GetRequireState rejects callbacks that carry no state parameter.
func (Security) GetRequireState() bool {
	return GetEnvBool(requireStateVar, true)
}

// GetCodeStorePath is empty unless the last code should survive restarts.
func (Security) GetCodeStorePath() string {
	return GetEnv(codeStorePathVar, "")
}

func (Security) GetCodeStorePassphrase() string {
	return GetEnv(codeStorePassphraseVar, "")
}
