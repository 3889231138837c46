package chain

import "errors"

// ErrCorruption, ErrNotFound and friends are the sentinel errors of the
// chain layer, queryable with errors.Is. Not every failure wraps one:
// errors from the key/value store (internal/kv), such as opening a chain
// that does not exist, are passed through wrapped as they are. The wire
// boundary (internal/wire) does not classify by sentinel; it reports every
// manager failure as ERROR.
var (
	// ErrCorruption indicates a stored or transmitted value failed to
	// parse, or had an unexpected length.
	ErrCorruption = errors.New("corrupt data")

	// ErrNotFound indicates a requested block index is 0 or beyond the
	// chain's current index.
	ErrNotFound = errors.New("not found")

	// ErrDataTooLarge indicates a data payload exceeded MaxDataLength.
	ErrDataTooLarge = errors.New("data field too large")

	// ErrVersionMismatch indicates a chain's on-disk schema version does
	// not match the version this build writes (DBVersion).
	ErrVersionMismatch = errors.New("unsupported chain version")

	// ErrCrypto indicates a key-generation, signing, or verification
	// failure in the underlying secp256k1/SHA-256 primitives.
	ErrCrypto = errors.New("cryptographic operation failed")
)

// MaxDataLength bounds the user data field on createChain and addBlock
// requests, matching the original's MAX_DATA_LENGTH.
const MaxDataLength = 8192

// DBVersion is the on-disk chain header schema version this build writes
// and requires on open.
const DBVersion = 0
