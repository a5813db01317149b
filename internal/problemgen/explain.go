package problemgen

import (
	"fmt"
	"strings"

	"github.com/dromero/pitagoritas/internal/fraction"
)

// Explanations follow the classroom narratives of the original exercises:
// unit/tens decomposition for two-digit sums and differences, inverse
// multiplication for divisions and common denominators for fractions.

func explainAddition(num1, num2 int) string {
	answer := num1 + num2
	if num1 < 10 && num2 < 10 {
		return joinSteps(
			fmt.Sprintf("Paso 1: Escribe %d + %d", num1, num2),
			fmt.Sprintf("Paso 2: Cuenta %d más a partir de %d", num2, num1),
			fmt.Sprintf("Paso 3: Resultado: %d", answer),
		)
	}
	u1, d1 := num1%10, num1/10
	u2, d2 := num2%10, num2/10
	return joinSteps(
		fmt.Sprintf("Paso 1: Escribe %d + %d", num1, num2),
		"Paso 2: Separa en unidades y decenas:",
		fmt.Sprintf("   %d = %d decenas + %d unidades", num1, d1, u1),
		fmt.Sprintf("   %d = %d decenas + %d unidades", num2, d2, u2),
		fmt.Sprintf("Paso 3: Suma las unidades: %d + %d = %d", u1, u2, u1+u2),
		fmt.Sprintf("Paso 4: Suma las decenas: %d + %d = %d", d1, d2, d1+d2),
		fmt.Sprintf("Paso 5: Resultado: %d", answer),
	)
}

func explainSubtraction(num1, num2 int) string {
	answer := num1 - num2
	if num1 < 10 {
		return joinSteps(
			fmt.Sprintf("Paso 1: Escribe %d - %d", num1, num2),
			fmt.Sprintf("Paso 2: Cuenta %d menos a partir de %d", num2, num1),
			fmt.Sprintf("Paso 3: Resultado: %d", answer),
		)
	}
	u1, d1 := num1%10, num1/10
	u2, d2 := num2%10, num2/10
	return joinSteps(
		fmt.Sprintf("Paso 1: Escribe %d - %d", num1, num2),
		"Paso 2: Separa en unidades y decenas:",
		fmt.Sprintf("   %d = %d decenas + %d unidades", num1, d1, u1),
		fmt.Sprintf("   %d = %d decenas + %d unidades", num2, d2, u2),
		fmt.Sprintf("Paso 3: Resta las unidades: %d - %d = %d", u1, u2, u1-u2),
		fmt.Sprintf("Paso 4: Resta las decenas: %d - %d = %d", d1, d2, d1-d2),
		fmt.Sprintf("Paso 5: Resultado: %d", answer),
	)
}

func explainMultiplication(num1, num2 int) string {
	answer := num1 * num2
	return joinSteps(
		fmt.Sprintf("Paso 1: Escribe %d × %d", num1, num2),
		fmt.Sprintf("Paso 2: Multiplica %d por %d", num1, num2),
		fmt.Sprintf("Paso 3: %d × %d = %d", num1, num2, answer),
		fmt.Sprintf("Paso 4: Resultado: %d", answer),
	)
}

func explainDivision(dividend, divisor, quotient int) string {
	return joinSteps(
		fmt.Sprintf("Paso 1: Escribe %d ÷ %d", dividend, divisor),
		fmt.Sprintf("Paso 2: Busca un número que multiplicado por %d dé %d", divisor, dividend),
		fmt.Sprintf("Paso 3: %d × %d = %d", divisor, quotient, dividend),
		fmt.Sprintf("Paso 4: Resultado: %d", quotient),
	)
}

func explainFractions(f1, f2, ans fraction.Fraction, isAddition bool) string {
	verb := "Suma"
	sym := "+"
	if !isAddition {
		verb = "Resta"
		sym = "-"
	}
	common := f1.Denominator * f2.Denominator
	n1 := f1.Numerator * f2.Denominator
	n2 := f2.Numerator * f1.Denominator
	var cross int
	if isAddition {
		cross = n1 + n2
	} else {
		cross = n1 - n2
	}
	return joinSteps(
		fmt.Sprintf("Paso 1: Escribe %s %s %s", f1, sym, f2),
		fmt.Sprintf("Paso 2: Busca un denominador común: %d × %d = %d", f1.Denominator, f2.Denominator, common),
		fmt.Sprintf("Paso 3: Convierte: %s = %d/%d y %s = %d/%d", f1, n1, common, f2, n2, common),
		fmt.Sprintf("Paso 4: %s los numeradores: %d %s %d = %d", verb, n1, sym, n2, cross),
		fmt.Sprintf("Paso 5: Simplifica: %d/%d = %s", cross, common, ans),
	)
}

func joinSteps(steps ...string) string {
	return strings.Join(steps, "\n")
}
