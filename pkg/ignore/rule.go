package ignore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cec-go/cec-go/pkg/cec"
)

// Rule parsing errors.
var (
	ErrInvalidRule   = errors.New("invalid ignore rule")
	ErrAllAll        = errors.New("all,all is invalid")
	ErrInvalidLA     = errors.New("invalid logical address (> 15)")
	ErrInvalidOpcode = errors.New("invalid opcode (> 255)")
)

// AllLogicalAddresses is the LA mask of a rule whose LA side is "all".
const AllLogicalAddresses uint16 = 0xffff

// Rule is one parsed ignore rule.
type Rule struct {
	// AllLA matches every initiator; LA is ignored.
	AllLA bool
	LA    cec.LogicalAddress

	// AllOpcodes matches every opcode; Opcode is ignored.
	AllOpcodes bool
	Opcode     uint8
}

// Mask returns the LA mask the rule applies to an opcode.
func (r Rule) Mask() uint16 {
	if r.AllLA {
		return AllLogicalAddresses
	}
	return 1 << r.LA
}

// String formats the rule in the syntax accepted by ParseRule.
func (r Rule) String() string {
	la, op := "all", "all"
	if !r.AllLA {
		la = strconv.Itoa(int(r.LA))
	}
	if !r.AllOpcodes {
		op = fmt.Sprintf("0x%02x", r.Opcode)
	}
	return la + "," + op
}

// ParseRule parses "<la>,<opcode>". Either side may be "all"; an omitted
// opcode means all opcodes. Numbers use C syntax: decimal, 0x-prefixed hex
// or 0-prefixed octal. An opcode may also be given by name, e.g.
// GIVE_OSD_NAME.
func ParseRule(s string) (Rule, error) {
	var r Rule

	laPart, opPart, hasOp := strings.Cut(strings.TrimSpace(s), ",")
	laPart = strings.TrimSpace(laPart)
	opPart = strings.TrimSpace(opPart)

	r.AllLA = strings.HasPrefix(laPart, "all")
	r.AllOpcodes = !hasOp || strings.HasPrefix(opPart, "all")

	if !r.AllLA {
		la, err := parseNumber(laPart)
		if err != nil {
			return Rule{}, fmt.Errorf("%w %q: logical address: %w", ErrInvalidRule, s, err)
		}
		if la > 15 {
			return Rule{}, ErrInvalidLA
		}
		r.LA = cec.LogicalAddress(la)
	}

	if !r.AllOpcodes {
		op, err := parseOpcode(opPart)
		if err != nil {
			return Rule{}, fmt.Errorf("%w %q: opcode: %w", ErrInvalidRule, s, err)
		}
		if op > 255 {
			return Rule{}, ErrInvalidOpcode
		}
		r.Opcode = uint8(op)
	}

	if r.AllLA && r.AllOpcodes {
		return Rule{}, ErrAllAll
	}
	return r, nil
}

func parseOpcode(s string) (uint64, error) {
	if op, ok := cec.LookupOpcode(s); ok {
		return uint64(op), nil
	}
	return parseNumber(s)
}

// parseNumber accepts the same forms as strtoul with base 0.
func parseNumber(s string) (uint64, error) {
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, digits = 8, s[1:]
	}
	return strconv.ParseUint(digits, base, 64)
}
