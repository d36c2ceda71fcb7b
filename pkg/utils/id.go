package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewEventID gera o identificador curto usado quando o produtor do evento
// não informa um ID próprio
func NewEventID() (string, error) {
	return gonanoid.Generate(characters, 12)
}
