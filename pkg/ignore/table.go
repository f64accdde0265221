package ignore

import (
	"sync"

	"github.com/cec-go/cec-go/pkg/cec"
)

// Table holds the accumulated ignore rules: a per-opcode mask of initiator
// logical addresses and a per-LA flag that ignores every opcode. The zero
// value ignores nothing. A Table is safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	opcode [256]uint16
	la     [cec.NumLogicalAddresses]bool
}

// Add records a parsed rule. A rule naming an opcode ORs its LA mask into
// that opcode's entry; a rule for all opcodes of one LA sets that LA's flag.
func (t *Table) Add(r Rule) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !r.AllOpcodes {
		t.opcode[r.Opcode] |= r.Mask()
		return
	}
	if !r.AllLA {
		t.la[r.LA] = true
	}
}

// Apply parses s and adds the rule.
func (t *Table) Apply(s string) error {
	r, err := ParseRule(s)
	if err != nil {
		return err
	}
	t.Add(r)
	return nil
}

// ApplyAll applies every rule in order and stops at the first error.
func (t *Table) ApplyAll(rules []string) error {
	for _, s := range rules {
		if err := t.Apply(s); err != nil {
			return err
		}
	}
	return nil
}

// Ignored reports whether a message from initiator la with opcode op is
// ignored.
func (t *Table) Ignored(la cec.LogicalAddress, op uint8) bool {
	if !la.Valid() {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.la[la] || t.opcode[op]&(1<<la) != 0
}

// IgnoredMsg applies Ignored to a received message. Poll messages carry no
// opcode and are only ignored by an all-opcodes rule.
func (t *Table) IgnoredMsg(msg *cec.Msg) bool {
	la := msg.Initiator()
	op, ok := msg.Opcode()
	if !ok {
		t.mu.RLock()
		defer t.mu.RUnlock()
		return t.la[la]
	}
	return t.Ignored(la, op)
}

// OpcodeMask returns the LA mask recorded for op.
func (t *Table) OpcodeMask(op uint8) uint16 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.opcode[op]
}

// IgnoresAll reports whether every opcode from la is ignored.
func (t *Table) IgnoresAll(la cec.LogicalAddress) bool {
	if !la.Valid() {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.la[la]
}

// Empty reports whether no rule has been added.
func (t *Table) Empty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, m := range t.opcode {
		if m != 0 {
			return false
		}
	}
	for _, b := range t.la {
		if b {
			return false
		}
	}
	return true
}
