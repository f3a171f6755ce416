// Package ordernum genera y descompone números de pedido con la forma
// CMD-<año>-<secuencia de 4 dígitos>, reiniciada cada año calendario.
package ordernum

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jhoicas/Stock-api/internal/domain"
)

const prefix = "CMD"

var numberRe = regexp.MustCompile(`^CMD-(\d{4})-(\d{4,})$`)

// Format construye el número de pedido para un año y una secuencia dados.
// La secuencia se rellena a 4 dígitos; por encima de 9999 se alarga sin
// truncar.
func Format(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// Parse descompone un número de pedido en año y secuencia.
func Parse(number string) (year, seq int, err error) {
	m := numberRe.FindStringSubmatch(number)
	if m == nil {
		return 0, 0, domain.ErrInvalidInput
	}
	year, _ = strconv.Atoi(m[1])
	seq, _ = strconv.Atoi(m[2])
	return year, seq, nil
}
