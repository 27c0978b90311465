package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// FragmentKey creates a stable lookup key for a translated text fragment.
// Format: md5(text)[:16]_target_provider
func FragmentKey(text, targetLang, provider string) string {
	hash := md5.Sum([]byte(text))
	return fmt.Sprintf("%s_%s_%s", hex.EncodeToString(hash[:])[:16], targetLang, provider)
}
