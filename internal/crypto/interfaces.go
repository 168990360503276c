// Package crypto seals small secrets (backend credentials) before they are
// written to the local database.
package crypto

// Sealer encrypts values at rest with a key derived from the application
// secret. It knows nothing about storage or the network.
//
// Blob layout (base64, standard encoding):
//
//	salt (16 bytes) ‖ nonce (12 bytes) ‖ AES-256-GCM ciphertext
type Sealer interface {
	// Seal serializes v to JSON and encrypts it.
	Seal(v any) (string, error)

	// Open decrypts a blob produced by Seal and unmarshals it into target.
	// A wrong secret surfaces as [ErrDecrypt].
	Open(blob string, target any) error
}
