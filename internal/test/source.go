package test

import (
	"math/rand"
	"strconv"
	"strings"
)

var validTokens = []string{
	"print", "print", "+", "*", ";", "0", "1", "42", "123456789", "9223372036854775807", "\n", "\t",
}

func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	var toks []string
	for len(toks) < size {
		toks = append(toks, validTokens[rand.Intn(len(validTokens))])
	}

	return strings.Join(toks, sep)
}

// GetRandomProgram builds a program of size print statements whose
// expressions are sums of products of small literals, together with the
// value each statement must print.
func GetRandomProgram(r *rand.Rand, size int) (string, []int64) {
	var (
		src    strings.Builder
		expect []int64
	)

	for i := 0; i < size; i++ {
		var sum int64

		src.WriteString("print ")
		terms := 1 + r.Intn(4)
		for t := 0; t < terms; t++ {
			if t > 0 {
				src.WriteString(" + ")
			}

			product := int64(1)
			factors := 1 + r.Intn(3)
			for f := 0; f < factors; f++ {
				if f > 0 {
					src.WriteString("*")
				}

				n := int64(r.Intn(100))
				product *= n
				src.WriteString(strconv.FormatInt(n, 10))
			}

			sum += product
		}

		src.WriteString(";\n")
		expect = append(expect, sum)
	}

	return src.String(), expect
}
