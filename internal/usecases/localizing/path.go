package localizing

import (
	"fmt"
	"strconv"
	"strings"
)

type pathSegment struct {
	key     string
	index   int
	isIndex bool
}

// ExtractStrings percorre a árvore em profundidade e devolve todas as folhas
// de texto junto com o caminho de cada uma (formato `a.b[2].c`). As duas
// fatias têm sempre o mesmo tamanho e a mesma ordem. Folhas não-texto
// (número, booleano, null) não são coletadas. O caminho textual é descritivo:
// chaves contendo `.` ou `[` o tornam ambíguo, por isso a reinserção do
// pipeline usa os segmentos estruturados de extractStringLeaves, nunca o
// texto remontado.
func ExtractStrings(root *Node) ([]string, []string) {
	values, leaves := extractStringLeaves(root)

	var paths []string
	for _, segments := range leaves {
		paths = append(paths, formatPath(segments))
	}
	return values, paths
}

// extractStringLeaves é a forma estruturada da extração: devolve cada folha
// de texto com seus segmentos de caminho já separados, imunes a chaves com
// caracteres do delimitador
func extractStringLeaves(root *Node) ([]string, [][]pathSegment) {
	var values []string
	var leaves [][]pathSegment

	var walk func(node *Node, prefix []pathSegment)
	walk = func(node *Node, prefix []pathSegment) {
		if node == nil {
			return
		}

		switch node.Kind {
		case KindString:
			values = append(values, node.Str)
			leaves = append(leaves, append([]pathSegment(nil), prefix...))
		case KindArray:
			for i, child := range node.Arr {
				walk(child, append(prefix, pathSegment{index: i, isIndex: true}))
			}
		case KindObject:
			for _, member := range node.Obj {
				walk(member.Value, append(prefix, pathSegment{key: member.Key}))
			}
		}
	}

	walk(root, nil)
	return values, leaves
}

func formatPath(segments []pathSegment) string {
	var b strings.Builder
	for i, segment := range segments {
		if segment.isIndex {
			fmt.Fprintf(&b, "[%d]", segment.index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(segment.key)
	}
	return b.String()
}

func parsePath(path string) ([]pathSegment, error) {
	var segments []pathSegment

	i := 0
	for i < len(path) {
		switch {
		case path[i] == '.':
			i++
		case path[i] == '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("caminho %q: colchete sem fechamento", path)
			}
			index, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil || index < 0 {
				return nil, fmt.Errorf("caminho %q: índice inválido", path)
			}
			segments = append(segments, pathSegment{index: index, isIndex: true})
			i += end + 1
		default:
			start := i
			for i < len(path) && path[i] != '.' && path[i] != '[' {
				i++
			}
			segments = append(segments, pathSegment{key: path[start:i]})
		}
	}

	return segments, nil
}

// SetAtPath atribui o texto na posição indicada pelo caminho textual,
// criando containers intermediários sob demanda: segmentos com colchete
// viram arrays, os demais viram objetos. O caminho vazio substitui a própria
// raiz.
func SetAtPath(root *Node, path string, value string) error {
	if path == "" {
		return setAtSegments(root, nil, value)
	}

	segments, err := parsePath(path)
	if err != nil {
		return err
	}

	return setAtSegments(root, segments, value)
}

func setAtSegments(root *Node, segments []pathSegment, value string) error {
	if root == nil {
		return fmt.Errorf("árvore nula")
	}

	if len(segments) == 0 {
		*root = Node{Kind: KindString, Str: value}
		return nil
	}

	node := root
	for i, segment := range segments {
		last := i == len(segments)-1

		if segment.isIndex {
			if node.Kind != KindArray {
				*node = Node{Kind: KindArray}
			}
			for len(node.Arr) <= segment.index {
				node.Arr = append(node.Arr, &Node{Kind: KindNull})
			}
			if last {
				node.Arr[segment.index] = &Node{Kind: KindString, Str: value}
				return nil
			}
			node = node.Arr[segment.index]
			continue
		}

		if node.Kind != KindObject {
			*node = Node{Kind: KindObject}
		}

		var child *Node
		for _, member := range node.Obj {
			if member.Key == segment.key {
				child = member.Value
				break
			}
		}
		if child == nil {
			child = &Node{Kind: KindNull}
			node.Obj = append(node.Obj, Member{Key: segment.key, Value: child})
		}

		if last {
			*child = Node{Kind: KindString, Str: value}
			return nil
		}
		node = child
	}

	return nil
}
