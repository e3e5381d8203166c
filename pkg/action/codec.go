package action

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec handles encoding and decoding of action argument payloads.
// It supports two modes:
//   - Signed (default): base64 + HMAC signature, visible but tamper-proof
//   - Encrypted: AES-256-GCM, fully opaque
type Codec struct {
	key []byte
	gcm cipher.AEAD
}

// NewCodec creates a codec with the given key. Keys shorter than 32 bytes
// are stretched with SHA-256 so AES-256 always gets a full-length key.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Codec{key: key, gcm: gcm}, nil
}

// Encode serializes a value with msgpack and returns an encoded token.
// If sensitive is true the payload is encrypted; otherwise it is signed.
func (c *Codec) Encode(v any, sensitive bool) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", err
	}

	if sensitive {
		return c.encrypt(packed)
	}
	return c.sign(packed)
}

// Decode deserializes a token into v. If sensitive is true the payload is
// decrypted; otherwise its signature is verified.
func (c *Codec) Decode(encoded string, sensitive bool, v any) error {
	var packed []byte
	var err error

	if sensitive {
		packed, err = c.decrypt(encoded)
	} else {
		packed, err = c.verify(encoded)
	}
	if err != nil {
		return err
	}

	return msgpack.Unmarshal(packed, v)
}

// Ref builds a complete action reference, "name" or "name:token".
func (c *Codec) Ref(name string, args map[string]any) (string, error) {
	if len(args) == 0 {
		return name, nil
	}
	token, err := c.Encode(args, false)
	if err != nil {
		return "", err
	}
	return name + ":" + token, nil
}

// sign creates a signed but visible encoding: base64.signature
func (c *Codec) sign(data []byte) (string, error) {
	b64 := base64.RawURLEncoding.EncodeToString(data)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil)[:16])
	return b64 + "." + sig, nil
}

// verify checks the signature and decodes a signed token.
func (c *Codec) verify(encoded string) ([]byte, error) {
	parts := strings.SplitN(encoded, ".", 2)
	if len(parts) != 2 {
		return nil, errors.New("action: invalid token: missing signature")
	}

	data, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, err
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, c.key)
	mac.Write(data)
	expected := mac.Sum(nil)[:16]

	if !hmac.Equal(sig, expected) {
		return nil, errors.New("action: signature verification failed")
	}

	return data, nil
}

// encrypt produces an AES-256-GCM encoding with the nonce prepended.
func (c *Codec) encrypt(data []byte) (string, error) {
	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := c.gcm.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(ciphertext), nil
}

// decrypt decodes and decrypts an encrypted token.
func (c *Codec) decrypt(encoded string) ([]byte, error) {
	ciphertext, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < c.gcm.NonceSize() {
		return nil, errors.New("action: ciphertext too short")
	}

	nonce := ciphertext[:c.gcm.NonceSize()]
	ciphertext = ciphertext[c.gcm.NonceSize():]

	return c.gcm.Open(nil, nonce, ciphertext, nil)
}
