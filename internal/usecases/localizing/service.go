package localizing

import (
	"context"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=mocks/service.go -package=mocks

// Translator é o contrato do backend externo de tradução: deve devolver as
// traduções na mesma ordem e quantidade dos textos recebidos. Violações do
// contrato são tratadas pelo pipeline como fallback, nunca propagadas.
type Translator interface {
	Translate(ctx context.Context, texts []string, targetLanguage string) ([]string, error)
}

// Outcome distingue uma tradução real de um fallback para o texto original
type Outcome string

const (
	OutcomeTranslated Outcome = "translated"
	OutcomeFallback   Outcome = "fallback"
)

// Result é o retorno do pipeline de tradução
type Result struct {
	Tree              *Node
	StringsTranslated int
	Outcome           Outcome
}

var supportedLanguages = map[string]bool{
	"zh": true,
	"ja": true,
	"ar": true,
	"fr": true,
	"ko": true,
	"es": true,
	"pt": true,
}

// IsSupportedLanguage verifica se o código de idioma faz parte do conjunto
// aceito pelo backend de tradução
func IsSupportedLanguage(code string) bool {
	return supportedLanguages[code]
}

// Localizer define a interface consumida pelo handler de tradução
type Localizer interface {
	TranslateTree(ctx context.Context, tree *Node, targetLanguage string) (*Result, error)
}

type Service struct {
	translator Translator
	cache      *Cache
}

func NewService(translator Translator, cache *Cache) *Service {
	if cache == nil {
		cache = NewCache()
	}
	return &Service{
		translator: translator,
		cache:      cache,
	}
}

// TranslateTree traduz todas as folhas de texto da árvore para o idioma de
// destino. A árvore recebida nunca é mutada: a tradução opera sobre uma
// cópia profunda e reinsere cada resultado pelos segmentos de extração, para
// que chaves contendo `.` ou `[` não sejam reinterpretadas como caminho.
func (s *Service) TranslateTree(ctx context.Context, tree *Node, targetLanguage string) (*Result, error) {
	translated := tree.Clone()

	texts, leaves := extractStringLeaves(translated)
	if len(texts) == 0 {
		return &Result{Tree: translated, Outcome: OutcomeTranslated}, nil
	}

	results, translatedCount, outcome := s.batchTranslate(ctx, texts, targetLanguage)

	for i, segments := range leaves {
		if err := setAtSegments(translated, segments, results[i]); err != nil {
			return nil, err
		}
	}

	return &Result{
		Tree:              translated,
		StringsTranslated: translatedCount,
		Outcome:           outcome,
	}, nil
}

// batchTranslate resolve primeiro pelo cache e faz uma única chamada externa
// com o subconjunto não cacheado. Erro ou resposta desalinhada do backend
// degradam o lote inteiro para os textos originais, nunca uma mistura que
// arriscasse desalinhar os caminhos.
func (s *Service) batchTranslate(ctx context.Context, texts []string, targetLanguage string) ([]string, int, Outcome) {
	results := make([]string, len(texts))

	missing := make([]string, 0, len(texts))
	missingIdx := make([]int, 0, len(texts))

	for i, text := range texts {
		if cached, ok := s.cache.Get(text, targetLanguage); ok {
			results[i] = cached
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}

	cachedCount := len(texts) - len(missing)

	if len(missing) == 0 {
		return results, cachedCount, OutcomeTranslated
	}

	translations, err := s.translator.Translate(ctx, missing, targetLanguage)
	if err != nil || len(translations) != len(missing) {
		if err != nil {
			logrus.WithError(err).WithField("target_language", targetLanguage).
				Warn("Backend de tradução indisponível, usando textos originais")
		} else {
			logrus.WithFields(logrus.Fields{
				"target_language": targetLanguage,
				"sent":            len(missing),
				"received":        len(translations),
			}).Warn("Backend de tradução devolveu lote desalinhado, usando textos originais")
		}

		for j, idx := range missingIdx {
			results[idx] = missing[j]
		}
		return results, cachedCount, OutcomeFallback
	}

	for j, idx := range missingIdx {
		s.cache.Put(missing[j], targetLanguage, translations[j])
		results[idx] = translations[j]
	}

	return results, len(texts), OutcomeTranslated
}
