package flow

import (
	"fmt"
	"strings"

	sdk "github.com/onflow/flow-go-sdk"
	"github.com/onflow/flow-go-sdk/crypto"
)

const (
	HashSHA3_256 = "SHA3_256"
	HashSHA2_256 = "SHA2_256"
)

// Signer holds a single ECDSA P-256 account key that acts as proposer, payer
// and authorizer of the transactions it signs.
type Signer struct {
	Address  sdk.Address
	KeyIndex uint32

	signer    crypto.Signer
	publicKey crypto.PublicKey
	hashAlgo  crypto.HashAlgorithm
}

func NewSigner(address string, keyIndex uint32, privateKeyHex, hashAlgo string) (*Signer, error) {
	if address == "" {
		return nil, fmt.Errorf("signer address is required")
	}

	var algo crypto.HashAlgorithm
	switch hashAlgo {
	case "", HashSHA3_256:
		algo = crypto.SHA3_256
	case HashSHA2_256:
		algo = crypto.SHA2_256
	default:
		return nil, fmt.Errorf("unsupported hash algorithm %q", hashAlgo)
	}

	key, err := crypto.DecodePrivateKeyHex(crypto.ECDSA_P256, strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decode private key: %w", err)
	}
	signer, err := crypto.NewInMemorySigner(key, algo)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}

	return &Signer{
		Address:   sdk.HexToAddress(address),
		KeyIndex:  keyIndex,
		signer:    signer,
		publicKey: key.PublicKey(),
		hashAlgo:  algo,
	}, nil
}

func (s *Signer) Sign(message []byte) ([]byte, error) {
	return s.signer.Sign(message)
}

func (s *Signer) Verify(message, sig []byte) bool {
	hasher, err := crypto.NewHasher(s.hashAlgo)
	if err != nil {
		return false
	}
	ok, err := s.publicKey.Verify(sig, message, hasher)
	return err == nil && ok
}
