package textsource

import (
	"strconv"
	"strings"
	"unicode"
)

// operand is one value on the content stream operand stack.
type operand struct {
	str   string
	isStr bool
	num   float64
	isNum bool
	arr   []operand
	isArr bool
}

// TextFromContentStream reads the text-showing operators of a decoded page
// content stream. Tj, TJ, ' and " emit text; T*, Tm, ET and a vertical Td
// start a new line; a horizontal Td emits a space. Blank lines are dropped.
func TextFromContentStream(data []byte) string {
	var out strings.Builder
	var stack []operand
	var arrays [][]operand

	push := func(o operand) {
		if n := len(arrays); n > 0 {
			arrays[n-1] = append(arrays[n-1], o)
			return
		}
		stack = append(stack, o)
	}
	lastStr := func() (string, bool) {
		if len(stack) == 0 || !stack[len(stack)-1].isStr {
			return "", false
		}
		return stack[len(stack)-1].str, true
	}

	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case isPDFSpace(c):
			i++
		case c == '%':
			for i < len(data) && data[i] != '\n' && data[i] != '\r' {
				i++
			}
		case c == '(':
			s, next := readLiteral(data, i+1)
			push(operand{str: s, isStr: true})
			i = next
		case c == '<' && i+1 < len(data) && data[i+1] == '<':
			i += 2
		case c == '>' && i+1 < len(data) && data[i+1] == '>':
			i += 2
		case c == '<':
			s, next := readHex(data, i+1)
			push(operand{str: s, isStr: true})
			i = next
		case c == '[':
			arrays = append(arrays, nil)
			i++
		case c == ']':
			if n := len(arrays); n > 0 {
				arr := arrays[n-1]
				arrays = arrays[:n-1]
				push(operand{arr: arr, isArr: true})
			}
			i++
		case c == '/':
			j := i + 1
			for j < len(data) && !isPDFSpace(data[j]) && !isPDFDelim(data[j]) {
				j++
			}
			push(operand{})
			i = j
		case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
			j := i + 1
			for j < len(data) && (data[j] == '.' || (data[j] >= '0' && data[j] <= '9')) {
				j++
			}
			v, _ := strconv.ParseFloat(string(data[i:j]), 64)
			push(operand{num: v, isNum: true})
			i = j
		default:
			j := i + 1
			for j < len(data) && !isPDFSpace(data[j]) && !isPDFDelim(data[j]) {
				j++
			}
			op := string(data[i:j])
			i = j

			switch op {
			case "Tj":
				if s, ok := lastStr(); ok {
					out.WriteString(s)
				}
			case "'", "\"":
				if s, ok := lastStr(); ok {
					out.WriteByte('\n')
					out.WriteString(s)
				}
			case "TJ":
				if n := len(stack); n > 0 && stack[n-1].isArr {
					for _, el := range stack[n-1].arr {
						switch {
						case el.isStr:
							out.WriteString(el.str)
						case el.isNum && el.num < -200:
							out.WriteByte(' ')
						}
					}
				}
			case "Td", "TD":
				if n := len(stack); n >= 1 && stack[n-1].isNum && stack[n-1].num != 0 {
					out.WriteByte('\n')
				} else {
					out.WriteByte(' ')
				}
			case "T*", "Tm", "ET":
				out.WriteByte('\n')
			case "ID":
				// Inline image data runs until EI.
				if k := indexEI(data, i); k >= 0 {
					i = k
				} else {
					i = len(data)
				}
			}
			stack = stack[:0]
			arrays = arrays[:0]
		}
	}
	return cleanLines(out.String())
}

func readLiteral(data []byte, i int) (string, int) {
	var sb strings.Builder
	depth := 1
	for i < len(data) {
		c := data[i]
		switch {
		case c == '\\' && i+1 < len(data):
			i++
			switch e := data[i]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
			case '\r', '\n':
				// Line continuation.
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for k := 0; k < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; k++ {
						i++
						val = val*8 + int(data[i]-'0')
					}
					sb.WriteRune(rune(byte(val)))
				} else {
					sb.WriteByte(e)
				}
			}
		case c == '(':
			depth++
			sb.WriteByte(c)
		case c == ')':
			depth--
			if depth == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		case c >= 0x80:
			sb.WriteRune(rune(c))
		default:
			sb.WriteByte(c)
		}
		i++
	}
	return sb.String(), i
}

func readHex(data []byte, i int) (string, int) {
	var digits []byte
	for i < len(data) && data[i] != '>' {
		if isHexDigit(data[i]) {
			digits = append(digits, data[i])
		}
		i++
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	var sb strings.Builder
	for k := 0; k < len(digits); k += 2 {
		v, _ := strconv.ParseUint(string(digits[k:k+2]), 16, 8)
		sb.WriteRune(rune(byte(v)))
	}
	if i < len(data) {
		i++
	}
	return sb.String(), i
}

func indexEI(data []byte, from int) int {
	for k := from; k+2 < len(data); k++ {
		if isPDFSpace(data[k]) && data[k+1] == 'E' && data[k+2] == 'I' {
			return k + 3
		}
	}
	return -1
}

func cleanLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.FieldsFunc(line, func(r rune) bool {
			return unicode.IsSpace(r) || !unicode.IsPrint(r)
		}), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', 0:
		return true
	}
	return false
}

func isPDFDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
