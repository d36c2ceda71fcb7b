package localizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractStrings(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedTexts []string
		expectedPaths []string
	}{
		{
			name:          "Objeto raso com chaves na raiz",
			input:         `{"title": "Olá", "subtitle": "Mundo"}`,
			expectedTexts: []string{"Olá", "Mundo"},
			expectedPaths: []string{"title", "subtitle"},
		},
		{
			name:          "Aninhamento com array gera caminhos com colchete",
			input:         `{"menu": {"items": ["Início", "Perfil"], "footer": "Sair"}}`,
			expectedTexts: []string{"Início", "Perfil", "Sair"},
			expectedPaths: []string{"menu.items[0]", "menu.items[1]", "menu.footer"},
		},
		{
			name:          "Folhas não-texto são ignoradas",
			input:         `{"count": 3, "active": true, "missing": null, "label": "ok"}`,
			expectedTexts: []string{"ok"},
			expectedPaths: []string{"label"},
		},
		{
			name:          "Array de objetos intercala índices e chaves",
			input:         `{"cards": [{"title": "A"}, {"title": "B"}]}`,
			expectedTexts: []string{"A", "B"},
			expectedPaths: []string{"cards[0].title", "cards[1].title"},
		},
		{
			name:          "Árvore sem strings devolve fatias vazias",
			input:         `{"a": 1, "b": [2, 3]}`,
			expectedTexts: nil,
			expectedPaths: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := DecodeTree([]byte(tt.input))
			assert.NoError(t, err)

			texts, paths := ExtractStrings(root)
			assert.Equal(t, tt.expectedTexts, texts)
			assert.Equal(t, tt.expectedPaths, paths)
			assert.Len(t, paths, len(texts))
		})
	}
}

func TestSetAtPath(t *testing.T) {
	t.Run("Substitui folha existente sem alterar o resto", func(t *testing.T) {
		root, err := DecodeTree([]byte(`{"title": "Olá", "count": 2}`))
		assert.NoError(t, err)

		err = SetAtPath(root, "title", "Bonjour")
		assert.NoError(t, err)

		out, err := EncodeTree(root)
		assert.NoError(t, err)
		assert.Equal(t, `{"title":"Bonjour","count":2}`, string(out))
	})

	t.Run("Substitui folha dentro de array aninhado", func(t *testing.T) {
		root, err := DecodeTree([]byte(`{"menu": {"items": ["Início", "Perfil"]}}`))
		assert.NoError(t, err)

		err = SetAtPath(root, "menu.items[1]", "Profil")
		assert.NoError(t, err)

		assert.Equal(t, "Início", root.Obj[0].Value.Obj[0].Value.Arr[0].Str)
		assert.Equal(t, "Profil", root.Obj[0].Value.Obj[0].Value.Arr[1].Str)
	})

	t.Run("Cria objetos intermediários sob demanda", func(t *testing.T) {
		root := &Node{Kind: KindObject}

		err := SetAtPath(root, "a.b.c", "valor")
		assert.NoError(t, err)

		out, err := EncodeTree(root)
		assert.NoError(t, err)
		assert.Equal(t, `{"a":{"b":{"c":"valor"}}}`, string(out))
	})

	t.Run("Cria arrays com preenchimento null até o índice", func(t *testing.T) {
		root := &Node{Kind: KindObject}

		err := SetAtPath(root, "items[2]", "terceiro")
		assert.NoError(t, err)

		out, err := EncodeTree(root)
		assert.NoError(t, err)
		assert.Equal(t, `{"items":[null,null,"terceiro"]}`, string(out))
	})

	t.Run("Caminho vazio substitui a raiz", func(t *testing.T) {
		root, err := DecodeTree([]byte(`{"a": 1}`))
		assert.NoError(t, err)

		err = SetAtPath(root, "", "raiz")
		assert.NoError(t, err)
		assert.Equal(t, KindString, root.Kind)
		assert.Equal(t, "raiz", root.Str)
	})

	t.Run("Árvore nula retorna erro", func(t *testing.T) {
		err := SetAtPath(nil, "a", "x")
		assert.Error(t, err)
	})

	t.Run("Colchete sem fechamento retorna erro", func(t *testing.T) {
		root := &Node{Kind: KindObject}
		err := SetAtPath(root, "items[2", "x")
		assert.Error(t, err)
	})

	t.Run("Índice não numérico retorna erro", func(t *testing.T) {
		root := &Node{Kind: KindObject}
		err := SetAtPath(root, "items[abc]", "x")
		assert.Error(t, err)
	})
}

func TestExtractStringLeaves_ChavesComDelimitadores(t *testing.T) {
	// Chaves contendo "." ou "[" não podem ser reinterpretadas como caminho:
	// a reinserção pelos segmentos escreve na folha original, sem criar
	// containers novos
	input := `{"a.b":"hello","tags[0]":"world","nested":{"x.y":"deep"}}`

	root, err := DecodeTree([]byte(input))
	assert.NoError(t, err)

	texts, leaves := extractStringLeaves(root)
	assert.Equal(t, []string{"hello", "world", "deep"}, texts)
	assert.Len(t, leaves, 3)
	assert.Equal(t, []pathSegment{{key: "a.b"}}, leaves[0])
	assert.Equal(t, []pathSegment{{key: "nested"}, {key: "x.y"}}, leaves[2])

	for i, segments := range leaves {
		assert.NoError(t, setAtSegments(root, segments, texts[i]+"!"))
	}

	out, err := EncodeTree(root)
	assert.NoError(t, err)
	assert.Equal(t, `{"a.b":"hello!","tags[0]":"world!","nested":{"x.y":"deep!"}}`, string(out))
}

func TestExtractAndSetRoundTrip(t *testing.T) {
	// Reinserir cada folha pelo caminho extraído reconstrói a mesma árvore
	input := `{"title":"Olá","menu":{"items":["Início","Perfil"],"footer":"Sair"},"cards":[{"label":"A"},{"label":"B"}]}`

	root, err := DecodeTree([]byte(input))
	assert.NoError(t, err)

	texts, paths := ExtractStrings(root)
	for i, path := range paths {
		assert.NoError(t, SetAtPath(root, path, texts[i]))
	}

	out, err := EncodeTree(root)
	assert.NoError(t, err)
	assert.Equal(t, input, string(out))
}
