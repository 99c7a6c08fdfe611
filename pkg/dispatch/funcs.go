package dispatch

// Provider base function ids. These form the table a provider returns from
// its init entry point; the registry resolves them once at load time.
const (
	// ProvTeardown releases the provider's opaque context. Optional.
	// Signature: registry.TeardownFunc.
	ProvTeardown FuncID = iota + 1

	// ProvQueryOperation lists the algorithm records a provider offers for
	// an operation. Mandatory. Signature: registry.QueryOperationFunc.
	ProvQueryOperation

	// ProvGetParams reports descriptive provider parameters such as name,
	// version and build info. Optional. Signature: registry.GetParamsFunc.
	ProvGetParams
)

// Core function ids. These form the table the library core hands to a
// provider's init entry point.
const (
	// CoreVersion returns the core library version string.
	// Signature: CoreVersionFunc.
	CoreVersion FuncID = iota + 1

	// CoreDefaultProperties returns the owning context's default property
	// query string. Signature: CoreDefaultPropertiesFunc.
	CoreDefaultProperties
)

// Signatures for core functions.
type (
	CoreVersionFunc           func() string
	CoreDefaultPropertiesFunc func() string
)

// Digest operation function ids. Mandatory: NewCtx, Update, Final.
const (
	DigestNewCtx FuncID = iota + 1
	DigestUpdate
	DigestFinal
	DigestSize
	DigestBlockSize
)

// Signatures for digest functions. The value returned by DigestNewCtxFunc
// is an opaque streaming state passed back to Update and Final.
type (
	DigestNewCtxFunc    func() any
	DigestUpdateFunc    func(ctx any, p []byte) error
	DigestFinalFunc     func(ctx any) ([]byte, error)
	DigestSizeFunc      func() int
	DigestBlockSizeFunc func() int
)

// Cipher operation function ids. Mandatory: NewCtx, Seal, Open.
// The shape is AEAD-oriented; non-AEAD implementations document how they
// interpret the nonce and additional data arguments.
const (
	CipherNewCtx FuncID = iota + 1
	CipherSeal
	CipherOpen
	CipherKeySize
	CipherNonceSize
	CipherOverhead
)

// Signatures for cipher functions.
type (
	CipherNewCtxFunc    func(key []byte) (any, error)
	CipherSealFunc      func(ctx any, nonce, plaintext, additional []byte) ([]byte, error)
	CipherOpenFunc      func(ctx any, nonce, ciphertext, additional []byte) ([]byte, error)
	CipherKeySizeFunc   func() int
	CipherNonceSizeFunc func() int
	CipherOverheadFunc  func() int
)

// MAC operation function ids. Mandatory: NewCtx, Update, Final.
const (
	MACNewCtx FuncID = iota + 1
	MACUpdate
	MACFinal
	MACSize
)

// Signatures for MAC functions.
type (
	MACNewCtxFunc func(key []byte) (any, error)
	MACUpdateFunc func(ctx any, p []byte) error
	MACFinalFunc  func(ctx any) ([]byte, error)
	MACSizeFunc   func() int
)

// KDF operation function ids. Mandatory: Derive.
const (
	KDFDerive FuncID = iota + 1
)

// KDFDeriveFunc derives length bytes of key material from the given
// parameters. Well-known parameter keys: "secret", "salt", "info"
// ([]byte) for extract-and-expand KDFs; "password" ([]byte),
// "iterations" (int) for password-based KDFs; "time", "memory",
// "threads" (int) for memory-hard KDFs.
type KDFDeriveFunc func(params map[string]any, length int) ([]byte, error)

// Key exchange / KEM operation function ids. Mandatory: Encapsulate,
// Decapsulate.
const (
	KEMGenerate FuncID = iota + 1
	KEMEncapsulate
	KEMDecapsulate
)

// Signatures for KEM functions. Keys cross the table boundary in their
// algorithm-defined byte encoding.
type (
	KEMGenerateFunc    func() (pub, priv []byte, err error)
	KEMEncapsulateFunc func(pub []byte) (ciphertext, shared []byte, err error)
	KEMDecapsulateFunc func(priv, ciphertext []byte) (shared []byte, err error)
)

// Signature operation function ids. Mandatory: Sign, Verify.
const (
	SignatureKeyGen FuncID = iota + 1
	SignatureSign
	SignatureVerify
)

// Signatures for signature functions.
type (
	SignatureKeyGenFunc func() (pub, priv []byte, err error)
	SignatureSignFunc   func(priv, message []byte) ([]byte, error)
	SignatureVerifyFunc func(pub, message, signature []byte) error
)

// Serializer operation function ids. Mandatory: Encode, Decode.
const (
	SerializerEncode FuncID = iota + 1
	SerializerDecode
)

// Signatures for serializer functions.
type (
	SerializerEncodeFunc func(v any) ([]byte, error)
	SerializerDecodeFunc func(data []byte, v any) error
)
