// Package dtls adapts PSK credential providers to pion/dtls configurations. The
// handshake itself is run by the engine.
package dtls

import (
	"errors"
	"fmt"

	piondtls "github.com/pion/dtls/v2"
)

var (
	ErrUnknownIdentity = errors.New("unknown psk identity")
	ErrUnknownHint     = errors.New("no psk for hint")
	ErrNoServerHint    = errors.New("no psk hint for server name")
)

// ClientIdentity is the identity a client presents together with its key.
type ClientIdentity struct {
	Identity []byte
	Key      []byte
}

// ServerHint is the identity hint a server sends together with its key.
type ServerHint struct {
	Hint []byte
	Key  []byte
}

// ClientCredentialProvider looks up client credentials. hint is nil when the server
// did not send one.
type ClientCredentialProvider interface {
	ProvideInfoForHint(hint []byte) (*ClientIdentity, bool)
}

// ServerCredentialProvider looks up server credentials.
type ServerCredentialProvider interface {
	ProvideKeyForIdentity(identity []byte) ([]byte, bool)
	// ProvideHintForSNI returns the hint for the server name requested by the client,
	// sni is empty when the client did not request one.
	ProvideHintForSNI(sni string) (*ServerHint, bool)
}

// DefaultCipherSuites are the PSK cipher suites offered by default.
var DefaultCipherSuites = []piondtls.CipherSuiteID{piondtls.TLS_PSK_WITH_AES_128_CCM_8}

// ClientConfig returns a PSK client configuration. The identity is the one provided
// for an absent hint; the key is looked up for the hint sent by the server.
func ClientConfig(provider ClientCredentialProvider) (*piondtls.Config, error) {
	id, ok := provider.ProvideInfoForHint(nil)
	if !ok {
		return nil, fmt.Errorf("cannot get client identity: %w", ErrUnknownHint)
	}
	return &piondtls.Config{
		PSK: func(hint []byte) ([]byte, error) {
			if len(hint) == 0 {
				return id.Key, nil
			}
			info, ok := provider.ProvideInfoForHint(hint)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownHint, hint)
			}
			return info.Key, nil
		},
		PSKIdentityHint:      id.Identity,
		CipherSuites:         DefaultCipherSuites,
		ExtendedMasterSecret: piondtls.RequestExtendedMasterSecret,
	}, nil
}

// ServerConfig returns a PSK server configuration for the server name sni. The key of
// a connecting client is looked up by its identity.
func ServerConfig(provider ServerCredentialProvider, sni string) (*piondtls.Config, error) {
	hint, ok := provider.ProvideHintForSNI(sni)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoServerHint, sni)
	}
	return &piondtls.Config{
		PSK: func(identity []byte) ([]byte, error) {
			key, ok := provider.ProvideKeyForIdentity(identity)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownIdentity, identity)
			}
			return key, nil
		},
		PSKIdentityHint:      hint.Hint,
		CipherSuites:         DefaultCipherSuites,
		ExtendedMasterSecret: piondtls.RequestExtendedMasterSecret,
	}, nil
}

// StaticCredentials serves a fixed set of credentials. Identities maps a client
// identity to its key, Hints maps a server name to the server hint.
type StaticCredentials struct {
	Client     *ClientIdentity
	Identities map[string][]byte
	Hints      map[string]ServerHint
}

func (c *StaticCredentials) ProvideInfoForHint([]byte) (*ClientIdentity, bool) {
	if c.Client == nil {
		return nil, false
	}
	return c.Client, true
}

func (c *StaticCredentials) ProvideKeyForIdentity(identity []byte) ([]byte, bool) {
	key, ok := c.Identities[string(identity)]
	return key, ok
}

func (c *StaticCredentials) ProvideHintForSNI(sni string) (*ServerHint, bool) {
	hint, ok := c.Hints[sni]
	if !ok {
		return nil, false
	}
	return &hint, true
}
