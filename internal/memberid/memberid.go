// Package memberid содержит вывод членского идентификатора из номера телефона.
package memberid

import (
	"crypto/rand"
	"strings"
)

// Prefix — общий префикс всех членских идентификаторов.
const Prefix = "AGV-"

const suffixLen = 6

const fallbackAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandFunc заполняет срез случайными байтами. Выделен в тип, чтобы в тестах
// подменять источник случайности детерминированным.
type RandFunc func(b []byte) error

func cryptoRand(b []byte) error {
	_, err := rand.Read(b)
	return err
}

// Generator выводит членские идентификаторы формата AGV-XXXXXX.
type Generator struct {
	randFn RandFunc
}

// New создаёт генератор с криптографическим источником случайности.
func New() *Generator {
	return NewWithRand(cryptoRand)
}

// NewWithRand создаёт генератор с указанным источником случайности.
func NewWithRand(fn RandFunc) *Generator {
	return &Generator{randFn: fn}
}

// Derive выводит идентификатор из номера телефона: последние шесть цифр
// номера, а при их нехватке — случайный шестисимвольный суффикс.
// Для номеров с шестью и более цифрами функция детерминирована.
func (g *Generator) Derive(phone string) string {
	digits := stripNonDigits(phone)
	if len(digits) >= suffixLen {
		return Prefix + digits[len(digits)-suffixLen:]
	}
	return Prefix + g.randomSuffix()
}

func (g *Generator) randomSuffix() string {
	buf := make([]byte, suffixLen)
	if err := g.randFn(buf); err != nil {
		// Источник случайности недоступен — деградируем до нулевого
		// суффикса, чтобы регистрация не блокировалась.
		return strings.Repeat("0", suffixLen)
	}
	out := make([]byte, suffixLen)
	for i, b := range buf {
		out[i] = fallbackAlphabet[int(b)%len(fallbackAlphabet)]
	}
	return string(out)
}

func stripNonDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
