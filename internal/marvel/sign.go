package marvel

import (
	"crypto/md5"
	"encoding/hex"
)

// Sign returns the request hash: hex md5 of ts + privateKey + publicKey.
func Sign(ts, privateKey, publicKey string) string {
	sum := md5.Sum([]byte(ts + privateKey + publicKey))
	return hex.EncodeToString(sum[:])
}
