// Package localizing traduz todas as folhas de texto de uma árvore JSON
// arbitrária preservando a estrutura, com cache por (texto, idioma) e
// fallback para o conteúdo original quando o backend de tradução falha.
package localizing

import (
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind identifica a variante de um nó da árvore
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindArray
	KindObject
)

// Member é um par chave/valor de um objeto. Objetos são fatias de membros,
// e não mapas, para preservar a ordem do documento original.
type Member struct {
	Key   string
	Value *Node
}

// Node é a variante etiquetada de um valor JSON. A invariante de "mesma
// forma" entre entrada e saída da tradução é garantida pelo tipo: apenas
// folhas KindString são reescritas.
type Node struct {
	Kind Kind
	Str  string
	Num  float64
	// Raw guarda o literal numérico original do documento; a serialização o
	// reemite sem passar por float64, preservando precisão e formato
	Raw  string
	Bool bool
	Arr  []*Node
	Obj  []Member
}

// DecodeTree constrói a árvore a partir de um documento JSON, preservando a
// ordem dos membros de cada objeto
func DecodeTree(data []byte) (*Node, error) {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)

	node := readNode(iter)
	if iter.Error != nil {
		return nil, errors.Wrap(iter.Error, "erro ao decodificar árvore JSON")
	}

	return node, nil
}

func readNode(iter *jsoniter.Iterator) *Node {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return &Node{Kind: KindString, Str: iter.ReadString()}
	case jsoniter.NumberValue:
		raw := string(iter.ReadNumber())
		num, _ := strconv.ParseFloat(raw, 64)
		return &Node{Kind: KindNumber, Num: num, Raw: raw}
	case jsoniter.BoolValue:
		return &Node{Kind: KindBool, Bool: iter.ReadBool()}
	case jsoniter.NilValue:
		iter.ReadNil()
		return &Node{Kind: KindNull}
	case jsoniter.ArrayValue:
		node := &Node{Kind: KindArray}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			node.Arr = append(node.Arr, readNode(it))
			return true
		})
		return node
	case jsoniter.ObjectValue:
		node := &Node{Kind: KindObject}
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			node.Obj = append(node.Obj, Member{Key: key, Value: readNode(it)})
			return true
		})
		return node
	default:
		iter.Skip()
		return &Node{Kind: KindNull}
	}
}

// EncodeTree serializa a árvore de volta para JSON na mesma ordem de membros
func EncodeTree(node *Node) ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	writeNode(stream, node)
	if stream.Error != nil {
		return nil, errors.Wrap(stream.Error, "erro ao serializar árvore JSON")
	}

	out := make([]byte, stream.Buffered())
	copy(out, stream.Buffer())
	return out, nil
}

func writeNode(stream *jsoniter.Stream, node *Node) {
	if node == nil {
		stream.WriteNil()
		return
	}

	switch node.Kind {
	case KindString:
		stream.WriteString(node.Str)
	case KindNumber:
		if node.Raw != "" {
			stream.WriteRaw(node.Raw)
		} else {
			stream.WriteFloat64(node.Num)
		}
	case KindBool:
		stream.WriteBool(node.Bool)
	case KindNull:
		stream.WriteNil()
	case KindArray:
		stream.WriteArrayStart()
		for i, child := range node.Arr {
			if i > 0 {
				stream.WriteMore()
			}
			writeNode(stream, child)
		}
		stream.WriteArrayEnd()
	case KindObject:
		stream.WriteObjectStart()
		for i, member := range node.Obj {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(member.Key)
			writeNode(stream, member.Value)
		}
		stream.WriteObjectEnd()
	}
}

// UnmarshalJSON permite usar Node diretamente em structs de request
func (n *Node) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeTree(data)
	if err != nil {
		return err
	}
	*n = *parsed
	return nil
}

// MarshalJSON serializa o nó preservando a ordem dos membros
func (n *Node) MarshalJSON() ([]byte, error) {
	return EncodeTree(n)
}

// Clone retorna uma cópia profunda da árvore. A tradução sempre opera sobre
// a cópia para nunca mutar a árvore recebida.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := &Node{Kind: n.Kind, Str: n.Str, Num: n.Num, Raw: n.Raw, Bool: n.Bool}

	if n.Arr != nil {
		clone.Arr = make([]*Node, len(n.Arr))
		for i, child := range n.Arr {
			clone.Arr[i] = child.Clone()
		}
	}

	if n.Obj != nil {
		clone.Obj = make([]Member, len(n.Obj))
		for i, member := range n.Obj {
			clone.Obj[i] = Member{Key: member.Key, Value: member.Value.Clone()}
		}
	}

	return clone
}
