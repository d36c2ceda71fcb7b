package localizing

import "sync"

type cacheKey struct {
	text string
	lang string
}

// Cache guarda traduções já realizadas por (texto, idioma de destino).
// Entradas nunca expiram dentro da vida do processo; escritas concorrentes
// são idempotentes, mas o mutex evita corrida no mapa em requisições
// paralelas. O cache é injetado no serviço, não estado global de pacote.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]string
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]string)}
}

func (c *Cache) Get(text, lang string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	translated, ok := c.entries[cacheKey{text: text, lang: lang}]
	return translated, ok
}

func (c *Cache) Put(text, lang, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey{text: text, lang: lang}] = translated
}

// Len retorna a quantidade de entradas armazenadas
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
