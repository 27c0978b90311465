package translate

import "fmt"

// Cache stores translations in memory for the duration of a run. Repeated
// fragments (page headers, boilerplate) hit the cache instead of the backend.
type Cache struct {
	translations map[string]string
}

// NewCache creates a new translation cache
func NewCache() *Cache {
	return &Cache{
		translations: make(map[string]string),
	}
}

func cacheKey(text, targetLang string) string {
	return fmt.Sprintf("%s\x00%s", targetLang, text)
}

// Add adds a translation to the cache
func (c *Cache) Add(text, targetLang, translation string) {
	c.translations[cacheKey(text, targetLang)] = translation
}

// Get retrieves a translation from the cache
func (c *Cache) Get(text, targetLang string) (string, bool) {
	translation, ok := c.translations[cacheKey(text, targetLang)]
	return translation, ok
}

// Len returns the number of cached translations
func (c *Cache) Len() int {
	return len(c.translations)
}
