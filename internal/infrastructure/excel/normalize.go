// Package excel implementa la generación y lectura de libros Excel para la
// exportación de stocks/movimientos y la importación masiva de stocks. Las
// cabeceras de los ficheros de planta vienen en francés y con acentos
// inconsistentes, por lo que toda comparación pasa por Fold.
package excel

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer descompone (NFD), elimina las marcas diacríticas y
// recompone. "Référence" y "Reference" quedan iguales tras Fold.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza una cabecera para comparación: sin acentos, minúsculas y
// sin espacios en los extremos.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Etiquetas francesas de los ficheros de planta.
const (
	labelNew      = "neuf"
	labelUsed     = "occasion"
	typeLabelIn   = "Entrée"
	typeLabelOut  = "Sortie"
	typeLabelTrsf = "Transfert"
)

// supplyRiskFromLabel mapea la etiqueta francesa de riesgo al enumerado
// interno; devuelve "" si no reconoce la etiqueta.
func supplyRiskFromLabel(label string) string {
	switch Fold(label) {
	case "eleve", "haut":
		return "HIGH"
	case "moyen":
		return "MEDIUM"
	case "faible", "bas":
		return "LOW"
	}
	return ""
}

// supplyRiskLabel mapea el enumerado interno a la etiqueta francesa usada en
// la exportación.
func supplyRiskLabel(risk string) string {
	switch risk {
	case "HIGH":
		return "Élevé"
	case "MEDIUM":
		return "Moyen"
	case "LOW":
		return "Faible"
	}
	return ""
}
