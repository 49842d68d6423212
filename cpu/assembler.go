package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/emusix/mos6502/optable"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// encodings indexes the opcode table by mnemonic and addressing mode.
var encodings = map[string]map[optable.Mode]optable.Descriptor{}

func init() {
	for _, desc := range optable.All() {
		modes, ok := encodings[desc.Mnemonic]
		if !ok {
			modes = map[optable.Mode]optable.Descriptor{}
			encodings[desc.Mnemonic] = modes
		}
		modes[desc.Mode] = desc
	}
}

// relative holds the mnemonics whose operand is a one-byte signed offset.
var relative = map[string]bool{
	"BCS": true, "BCC": true,
	"BEQ": true, "BNE": true,
	"BMI": true, "BPL": true,
	"BVS": true, "BVC": true,
}

// Assembler is a single pass assembler for standard 6502 syntax.
type Assembler struct {
	Verbose    bool        // If set, verbosely logs the assembler actions.
	Statements []Statement // List of generated statements.

	predefine map[string]string // Predefines
	Label     map[string]uint16 // Map of labels to addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a single numeric word. $ and % prefixes are
// the conventional hexadecimal and binary notations.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	// Equates substitute anywhere a number is expected, so forms like
	// #NAME and (NAME),y work.
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	source := word

	invert := false
	if len(word) != 0 && word[0] == '~' {
		invert = true
		word = word[1:]
	}

	switch {
	case len(word) == 0:
		err = ErrParseNumber(source)
		return
	case word[0] == '$':
		word = "0x" + word[1:]
	case word[0] == '%':
		word = "0b" + word[1:]
	}

	v64, err := strconv.ParseInt(word, 0, 17)
	if err != nil {
		err = ErrParseNumber(source)
		return
	}
	if v64 < -0x8000 || v64 > 0xffff {
		err = ErrValueRange
		return
	}

	value = uint16(v64)
	if invert {
		value = ^value
	}

	return
}

// parenEval does compile-time $(...) evaluations with the current equates
// bound as Starlark integers.
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -0x8000 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// parseLine expands a source line into words: $() evaluation, equate
// substitution, .equ and label handling.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do $() evaluations
	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Fields(line), func(a string) bool { return len(a) == 0 })

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words[1:] {
		// Operands first go through the equates.
		equate, ok := asm.Equate[word]
		if ok {
			words[1+n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint16, 16)
		}
		asm.Label[label] = asm.currentAddr()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	return
}

// currentAddr gets the address following the last generated statement.
func (asm *Assembler) currentAddr() uint16 {
	if len(asm.Statements) == 0 {
		return LOAD_ORIGIN
	}

	last := asm.Statements[len(asm.Statements)-1]

	return last.Addr + uint16(len(last.Bytes))
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statements = asm.Statements[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of labels.
	for n := range asm.Statements {
		st := &asm.Statements[n]

		if len(st.LinkLabel) == 0 {
			continue
		}
		target, ok := asm.Label[st.LinkLabel]
		if !ok {
			err = ErrLabelMissing(st.LinkLabel)
			lineno, line = st.LineNo, strings.Join(st.Words, " ")
			return
		}

		if relative[st.Words[0]] {
			// Offset is relative to the address after the offset byte.
			offset := int(target) - int(st.Addr+2)
			if offset < -128 || offset > 127 {
				err = ErrBranchRange
				lineno, line = st.LineNo, strings.Join(st.Words, " ")
				return
			}
			st.Bytes[1] = uint8(offset)
		} else {
			st.Bytes[1] = uint8(target & 0xff)
			st.Bytes[2] = uint8(target >> 8)
		}
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statements),
	}

	return
}

// operandKind classifies a parsed operand form.
type operandKind int

const (
	OPERAND_NONE      = operandKind(iota) // implied or accumulator
	OPERAND_IMMEDIATE                     // #value
	OPERAND_ADDR                          // value
	OPERAND_ADDR_X                        // value,x
	OPERAND_ADDR_Y                        // value,y
	OPERAND_INDIRECT                      // (value)
	OPERAND_INDX                          // (value,x)
	OPERAND_INDY                          // (value),y
)

// parseOperand classifies the operand word and extracts its value, or the
// label it must be linked against.
func (asm *Assembler) parseOperand(word string) (kind operandKind, value uint16, label string, err error) {
	lower := strings.ToLower(word)

	if len(word) == 0 || lower == "a" {
		kind = OPERAND_NONE
		return
	}

	if word[0] == '#' {
		kind = OPERAND_IMMEDIATE
		value, err = asm.valueOf(word[1:])
		return
	}

	switch {
	case strings.HasPrefix(word, "(") && strings.HasSuffix(lower, ",x)"):
		kind = OPERAND_INDX
		value, err = asm.valueOf(word[1 : len(word)-3])
		return
	case strings.HasPrefix(word, "(") && strings.HasSuffix(lower, "),y"):
		kind = OPERAND_INDY
		value, err = asm.valueOf(word[1 : len(word)-3])
		return
	case strings.HasPrefix(word, "(") && strings.HasSuffix(word, ")"):
		kind = OPERAND_INDIRECT
		value, err = asm.valueOf(word[1 : len(word)-1])
		return
	case strings.HasSuffix(lower, ",x"):
		kind = OPERAND_ADDR_X
		value, err = asm.valueOf(word[:len(word)-2])
		return
	case strings.HasSuffix(lower, ",y"):
		kind = OPERAND_ADDR_Y
		value, err = asm.valueOf(word[:len(word)-2])
		return
	}

	kind = OPERAND_ADDR
	value, err = asm.valueOf(word)
	if err != nil {
		// Not a number; a label reference, linked in the final pass.
		label, err = word, nil
	}

	return
}

// encode selects the opcode byte for a mnemonic and operand form and emits
// the instruction bytes. addr is where the instruction will live, needed
// for numeric branch targets.
func (asm *Assembler) encode(mnemonic string, kind operandKind, value uint16, label string, addr uint16) (bytes []uint8, err error) {
	modes, ok := encodings[mnemonic]
	if !ok {
		err = ErrMnemonicInvalid
		return
	}

	pick := func(mode optable.Mode) (desc optable.Descriptor, ok bool) {
		desc, ok = modes[mode]
		return
	}

	// Zero page forms are chosen when the value fits and the mnemonic has
	// one; labels always link as 16-bit absolutes.
	short := len(label) == 0 && value <= 0xff

	var desc optable.Descriptor
	switch kind {
	case OPERAND_NONE:
		desc, ok = pick(optable.MODE_NONE)
		if !ok || desc.Len != 1 {
			err = ErrModeUnsupported
			return
		}
		bytes = []uint8{desc.Code}
		return
	case OPERAND_IMMEDIATE:
		desc, ok = pick(optable.MODE_IMMEDIATE)
		if !ok {
			err = ErrModeUnsupported
			return
		}
		if value > 0xff {
			err = ErrValueRange
			return
		}
		bytes = []uint8{desc.Code, uint8(value)}
		return
	case OPERAND_INDX:
		desc, ok = pick(optable.MODE_INDIRECT_X)
	case OPERAND_INDY:
		desc, ok = pick(optable.MODE_INDIRECT_Y)
	case OPERAND_INDIRECT:
		// Only the indirect jump, tagged MODE_NONE with a word operand.
		desc, ok = pick(optable.MODE_NONE)
		if !ok || desc.Len != 3 {
			err = ErrModeUnsupported
			return
		}
		bytes = []uint8{desc.Code, uint8(value & 0xff), uint8(value >> 8)}
		return
	case OPERAND_ADDR:
		if relative[mnemonic] {
			desc, ok = pick(optable.MODE_NONE)
			if !ok {
				err = ErrModeUnsupported
				return
			}
			// Label targets get a placeholder offset; the link pass
			// fills it in. Numeric targets resolve immediately.
			offset := 0
			if len(label) == 0 {
				offset = int(value) - int(addr+2)
				if offset < -128 || offset > 127 {
					err = ErrBranchRange
					return
				}
			}
			bytes = []uint8{desc.Code, uint8(offset)}
			return
		}
		if short {
			desc, ok = pick(optable.MODE_ZEROPAGE)
			if ok {
				bytes = []uint8{desc.Code, uint8(value)}
				return
			}
		}
		desc, ok = pick(optable.MODE_ABSOLUTE)
	case OPERAND_ADDR_X:
		if short {
			desc, ok = pick(optable.MODE_ZEROPAGE_X)
			if ok {
				bytes = []uint8{desc.Code, uint8(value)}
				return
			}
		}
		desc, ok = pick(optable.MODE_ABSOLUTE_X)
	case OPERAND_ADDR_Y:
		if short {
			desc, ok = pick(optable.MODE_ZEROPAGE_Y)
			if ok {
				bytes = []uint8{desc.Code, uint8(value)}
				return
			}
		}
		desc, ok = pick(optable.MODE_ABSOLUTE_Y)
	}

	if !ok {
		err = ErrModeUnsupported
		return
	}

	switch desc.Len {
	case 2:
		if value > 0xff {
			err = ErrValueRange
			return
		}
		bytes = []uint8{desc.Code, uint8(value)}
	case 3:
		bytes = []uint8{desc.Code, uint8(value & 0xff), uint8(value >> 8)}
	}

	return
}

// parseWords evaluates the words of one line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var bytes []uint8
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := slices.Clone(words)
	initial_words[0] = strings.ToUpper(initial_words[0])

	defer func() {
		if len(bytes) == 0 {
			return
		}
		st := Statement{LineNo: lineno, Addr: asm.currentAddr(), Words: initial_words, Bytes: bytes, LinkLabel: label}
		asm.Statements = append(asm.Statements, st)
		if asm.currentAddr() < st.Addr {
			// Wrapped past the top of memory.
			err = ErrOriginOverflow
		}
	}()

	switch strings.ToLower(words[0]) {
	case ".byte":
		if len(words) < 2 {
			err = ErrDirectiveSyntax
			return
		}
		for _, word := range words[1:] {
			var value uint16
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if value > 0xff {
				err = ErrValueRange
				return
			}
			bytes = append(bytes, uint8(value))
		}
		initial_words[0] = ".byte"
		return
	case ".word":
		if len(words) < 2 {
			err = ErrDirectiveSyntax
			return
		}
		for _, word := range words[1:] {
			var value uint16
			value, err = asm.valueOf(word)
			if err != nil {
				return
			}
			bytes = append(bytes, uint8(value&0xff), uint8(value>>8))
		}
		initial_words[0] = ".word"
		return
	}

	mnemonic := strings.ToUpper(words[0])

	if len(words) > 2 {
		err = ErrOperandExtra
		return
	}

	var operand string
	if len(words) == 2 {
		operand = words[1]
	}

	kind, value, link, err := asm.parseOperand(operand)
	if err != nil {
		return
	}

	bytes, err = asm.encode(mnemonic, kind, value, link, asm.currentAddr())
	if err != nil {
		return
	}

	label = link
	return
}
