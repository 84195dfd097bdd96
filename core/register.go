package core

import "fmt"

// Register identifies one cell of the closed register set.
type Register int

const (
	A1 Register = iota
	B2
	C3

	NumRegisters = int(C3) + 1
)

var registerNames = [NumRegisters]string{"a1", "b2", "c3"}

// Name returns the source spelling of the register.
func (r Register) Name() string {
	if r < 0 || int(r) >= NumRegisters {
		panic("invalid register")
	}
	return registerNames[r]
}

func (r Register) String() string {
	return r.Name()
}

// Registers lists the declared registers in display order.
func Registers() []Register {
	regs := make([]Register, NumRegisters)
	for i := range regs {
		regs[i] = Register(i)
	}
	return regs
}

// ParseRegister maps a source name to a declared register.
func ParseRegister(name string) (Register, error) {
	for i, n := range registerNames {
		if n == name {
			return Register(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUndeclaredRegister, name)
}

// RegisterFile holds the value of every declared register.
type RegisterFile [NumRegisters]int64

// Get returns the value of r.
func (f *RegisterFile) Get(r Register) int64 {
	return f[r]
}

// Set stores v into r.
func (f *RegisterFile) Set(r Register, v int64) {
	f[r] = v
}

// Snapshot copies the register file into a name-keyed view.
func (f *RegisterFile) Snapshot() Snapshot {
	s := Snapshot{}
	copy(s.values[:], f[:])
	return s
}

// Snapshot is an immutable copy of the register file at the end of a run.
type Snapshot struct {
	values [NumRegisters]int64
}

// Value returns the value of the named register.
func (s Snapshot) Value(name string) (int64, bool) {
	r, err := ParseRegister(name)
	if err != nil {
		return 0, false
	}
	return s.values[r], true
}

// Get returns the value of r.
func (s Snapshot) Get(r Register) int64 {
	return s.values[r]
}

// Map returns the snapshot keyed by register name.
func (s Snapshot) Map() map[string]int64 {
	m := make(map[string]int64, NumRegisters)
	for _, r := range Registers() {
		m[r.Name()] = s.values[r]
	}
	return m
}
